package postlib

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// resolveSFTP fetches an sftp:// reference into a temp-backed FileInfo over
// an SSH transport. Password auth comes from the URL userinfo; without a
// password the default SSH keys under ~/.ssh are tried. Host keys are
// verified against the user's known_hosts file.
func resolveSFTP(ref string) (*FileInfo, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid sftp reference: %w", err)
	}

	remotePath := parsed.Path
	if remotePath == "" || remotePath == "/" {
		return nil, fmt.Errorf("sftp reference %q has no file path", parsed.Redacted())
	}
	fileName := path.Base(remotePath)

	var user, password string
	if parsed.User != nil {
		user = parsed.User.Username()
		password, _ = parsed.User.Password()
	}
	if user == "" {
		return nil, fmt.Errorf("sftp reference %q has no user", parsed.Redacted())
	}

	host := parsed.Host
	if !strings.Contains(host, ":") {
		host += ":22"
	}

	auth, err := sshAuthMethods(password)
	if err != nil {
		return nil, err
	}
	callback, err := sshHostKeyCallback()
	if err != nil {
		return nil, err
	}

	sshConn, err := ssh.Dial("tcp", host, &ssh.ClientConfig{
		User:            user,
		Auth:            auth,
		HostKeyCallback: callback,
	})
	if err != nil {
		return nil, fmt.Errorf("sftp dial %s: %w", host, err)
	}
	defer sshConn.Close()

	client, err := sftp.NewClient(sshConn)
	if err != nil {
		return nil, fmt.Errorf("sftp subsystem: %w", err)
	}
	defer client.Close()

	remote, err := client.Open(remotePath)
	if err != nil {
		return nil, fmt.Errorf("sftp open %s: %w", remotePath, err)
	}
	defer remote.Close()

	return spoolRemote(remote, fileName)
}

func sshAuthMethods(password string) ([]ssh.AuthMethod, error) {
	if password != "" {
		return []ssh.AuthMethod{ssh.Password(password)}, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	var signers []ssh.Signer
	for _, name := range []string{"id_ed25519", "id_rsa"} {
		key, err := os.ReadFile(filepath.Join(home, ".ssh", name))
		if err != nil {
			continue
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			continue
		}
		signers = append(signers, signer)
	}
	if len(signers) == 0 {
		return nil, fmt.Errorf("sftp: no password given and no usable key in ~/.ssh")
	}
	return []ssh.AuthMethod{ssh.PublicKeys(signers...)}, nil
}

func sshHostKeyCallback() (ssh.HostKeyCallback, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	cb, err := knownhosts.New(filepath.Join(home, ".ssh", "known_hosts"))
	if err != nil {
		return nil, fmt.Errorf("sftp: cannot load known_hosts: %w", err)
	}
	return cb, nil
}
