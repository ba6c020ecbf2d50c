package postlib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
)

// uploadPhase tracks the state of a remote upload session.
type uploadPhase int

const (
	phaseInit uploadPhase = iota
	phaseAppending
	phaseFinalized
)

// uploadSession is the client-side view of the server-side upload state
// identified by a media id. There is no partial-session resume: a failure
// mid-APPEND abandons the session and a retry starts with a fresh INIT.
type uploadSession struct {
	mediaID    MediaID
	totalBytes int64
	phase      uploadPhase
}

// UploadMedia resolves a media reference, validates it against the
// compatibility policy and drives the chunked INIT → APPEND(×N) → FINALIZE
// upload protocol. It returns the remote-assigned media identifier.
//
// Phases run strictly sequentially; each APPEND completes before the next
// chunk is read, keeping one chunk resident at a time. Any 429 response
// surfaces as ErrRateLimitExceeded and is never retried here. The resolved
// file is closed on both success and failure paths.
func (c *Client) UploadMedia(ref string, chunkSize int64) (MediaID, error) {
	if chunkSize <= 0 {
		chunkSize = c.chunkSize
	}

	info, err := ResolveFile(c.plain, ref)
	if err != nil {
		return "", err
	}
	defer info.Close()

	if _, err = CheckCompat(info); err != nil {
		return "", err
	}

	session, err := c.uploadInit(info)
	if err != nil {
		return "", err
	}
	c.handlers.UploadStartHandler(info.Name, info.Size)

	chunker, err := NewChunker(info, chunkSize)
	if err != nil {
		return "", err
	}
	for {
		chunk, err := chunker.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if err = c.uploadAppend(session, info.Name, chunk); err != nil {
			return "", err
		}
		c.handlers.UploadProgressHandler(info.Name, chunk.Size)
	}

	if err = c.uploadFinalize(session); err != nil {
		return "", err
	}
	c.handlers.UploadCompleteHandler(info.Name, session.mediaID)
	return session.mediaID, nil
}

// uploadInit opens a new upload session. The response must contain a media
// identifier; its absence is a protocol error and no APPEND is issued.
func (c *Client) uploadInit(info *FileInfo) (*uploadSession, error) {
	params := url.Values{
		"command":     {"INIT"},
		"total_bytes": {strconv.FormatInt(info.Size, 10)},
		"media_type":  {info.MimeType},
	}
	data, err := c.uploadForm(params)
	if err != nil {
		return nil, err
	}
	id, ok := stringField(data, "media_id_string", "media_id")
	if !ok {
		return nil, fmt.Errorf(`%w: "media_id_string" not contained in response body`, ErrMalformedResponse)
	}
	return &uploadSession{
		mediaID:    MediaID(id),
		totalBytes: info.Size,
		phase:      phaseAppending,
	}, nil
}

// uploadAppend sends one chunk as a multipart body with exactly four parts
// in fixed order: command, media_id, the binary media part and
// segment_index. The non-binary parameters stay alphabetically key-sorted
// to match the remote's signature verification.
func (c *Client) uploadAppend(session *uploadSession, fileName string, chunk *FileChunk) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("command", "APPEND"); err != nil {
		return err
	}
	if err := w.WriteField("media_id", string(session.mediaID)); err != nil {
		return err
	}
	part, err := w.CreatePart(mediaPartHeader(fileName))
	if err != nil {
		return err
	}
	if _, err = part.Write(chunk.Data); err != nil {
		return err
	}
	if err = w.WriteField("segment_index", strconv.Itoa(chunk.Index)); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}

	res, err := c.uploadPost(w.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return checkStatus(res)
}

// uploadFinalize completes the session; afterwards the media id can be
// attached to a post.
func (c *Client) uploadFinalize(session *uploadSession) error {
	params := url.Values{
		"command":  {"FINALIZE"},
		"media_id": {string(session.mediaID)},
	}
	if _, err := c.uploadForm(params); err != nil {
		return err
	}
	session.phase = phaseFinalized
	return nil
}

// uploadForm posts urlencoded parameters to the upload endpoint.
// url.Values.Encode sorts keys alphabetically, which the remote's
// signature verification requires.
func (c *Client) uploadForm(params url.Values) (map[string]any, error) {
	res, err := c.uploadPost("application/x-www-form-urlencoded", strings.NewReader(params.Encode()))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if err = checkStatus(res); err != nil {
		return nil, err
	}
	var data map[string]any
	if err = json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, err.Error())
	}
	return data, nil
}

func (c *Client) uploadPost(contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, c.uploadRoot+"/media/upload.json", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.signed.Do(req)
}

// mediaPartHeader builds the Content-Disposition of the binary part using
// RFC 7578 quoted-string escaping for the embedded file name.
func mediaPartHeader(fileName string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="media"; filename="%s"`, escapeQuotes(fileName)))
	h.Set("Content-Type", "application/octet-stream")
	return h
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
