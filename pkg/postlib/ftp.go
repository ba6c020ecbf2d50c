package postlib

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
)

const ftpDialTimeout = 30 * time.Second

// resolveFTP fetches an ftp:// or ftps:// reference into a temp-backed
// FileInfo. Credentials come from the URL userinfo, defaulting to anonymous;
// they are used for the transfer only and never persisted or logged.
func resolveFTP(ref string) (*FileInfo, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid ftp reference: %w", err)
	}

	remotePath := parsed.Path
	if remotePath == "" || remotePath == "/" {
		return nil, fmt.Errorf("ftp reference %q has no file path", parsed.Redacted())
	}
	fileName := path.Base(remotePath)

	user, password := "anonymous", "anonymous"
	if parsed.User != nil {
		user = parsed.User.Username()
		if p, ok := parsed.User.Password(); ok {
			password = p
		}
	}

	host := parsed.Host
	if !strings.Contains(host, ":") {
		host += ":21"
	}

	dialOpts := []ftp.DialOption{ftp.DialWithTimeout(ftpDialTimeout)}
	if strings.EqualFold(parsed.Scheme, "ftps") {
		hostname := host
		if h, _, err := net.SplitHostPort(host); err == nil {
			hostname = h
		}
		dialOpts = append(dialOpts, ftp.DialWithExplicitTLS(&tls.Config{
			ServerName: hostname,
			MinVersion: tls.VersionTLS12,
		}))
	}

	conn, err := ftp.Dial(host, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("ftp dial %s: %w", host, err)
	}
	defer conn.Quit()

	if err := conn.Login(user, password); err != nil {
		return nil, fmt.Errorf("ftp login: %w", err)
	}
	if err := conn.Type(ftp.TransferTypeBinary); err != nil {
		return nil, fmt.Errorf("ftp type: %w", err)
	}

	res, err := conn.Retr(remotePath)
	if err != nil {
		return nil, fmt.Errorf("ftp retr %s: %w", remotePath, err)
	}
	defer res.Close()

	return spoolRemote(res, fileName)
}
