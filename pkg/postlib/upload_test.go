package postlib

import (
	"bytes"
	"errors"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func newTestClient(t *testing.T, apiRoot, uploadRoot string, handlers *Handlers) *Client {
	t.Helper()
	c, err := NewClient(Credentials{
		ConsumerKey:       "ck",
		ConsumerSecret:    "cs",
		AccessTokenKey:    "atk",
		AccessTokenSecret: "ats",
	}, &ClientOpts{
		APIRoot:      apiRoot,
		UploadRoot:   uploadRoot,
		ChunkSize:    1024,
		Handlers:     handlers,
		Logger:       log.New(io.Discard, "", 0),
		SkipAppToken: true,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

// appendRecord captures one parsed APPEND request.
type appendRecord struct {
	mediaID      string
	segmentIndex int
	data         []byte
	partOrder    []string
	fileName     string
}

// uploadMock implements the remote upload endpoint for tests.
type uploadMock struct {
	t        *testing.T
	initReq  map[string]string
	appends  []appendRecord
	finals   int
	initBody string // response body for INIT

	appendStatus int // non-zero forces this status on every APPEND
}

func (m *uploadMock) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/media/upload.json" {
		m.t.Errorf("unexpected upload path %q", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	ct, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		m.t.Errorf("parsing content type: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if ct == "multipart/form-data" {
		m.serveAppend(w, r, params["boundary"])
		return
	}

	if err := r.ParseForm(); err != nil {
		m.t.Errorf("parsing form: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	switch cmd := r.PostForm.Get("command"); cmd {
	case "INIT":
		m.initReq = map[string]string{
			"total_bytes": r.PostForm.Get("total_bytes"),
			"media_type":  r.PostForm.Get("media_type"),
		}
		io.WriteString(w, m.initBody)
	case "FINALIZE":
		m.finals++
		io.WriteString(w, `{"media_id_string":"`+r.PostForm.Get("media_id")+`"}`)
	default:
		m.t.Errorf("unexpected command %q", cmd)
		w.WriteHeader(http.StatusBadRequest)
	}
}

func (m *uploadMock) serveAppend(w http.ResponseWriter, r *http.Request, boundary string) {
	if m.appendStatus != 0 {
		w.WriteHeader(m.appendStatus)
		return
	}
	rec := appendRecord{segmentIndex: -1}
	mr := multipart.NewReader(r.Body, boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			m.t.Errorf("reading multipart body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		name := part.FormName()
		rec.partOrder = append(rec.partOrder, name)
		val, err := io.ReadAll(part)
		if err != nil {
			m.t.Errorf("reading part %q: %v", name, err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch name {
		case "command":
			if got := string(val); got != "APPEND" {
				m.t.Errorf("multipart command = %q, want APPEND", got)
			}
		case "media_id":
			rec.mediaID = string(val)
		case "media":
			rec.data = val
			rec.fileName = part.FileName()
		case "segment_index":
			rec.segmentIndex, err = strconv.Atoi(string(val))
			if err != nil {
				m.t.Errorf("segment_index %q is not numeric", val)
			}
		default:
			m.t.Errorf("unexpected part %q", name)
		}
	}
	m.appends = append(m.appends, rec)
	w.WriteHeader(http.StatusNoContent)
}

func TestUploadMediaHappyPath(t *testing.T) {
	data := makeData(2500)
	p := tempMediaFile(t, "friday.png", data)

	mock := &uploadMock{t: t, initBody: `{"media_id":12345,"media_id_string":"12345"}`}
	srv := httptest.NewServer(mock)
	defer srv.Close()

	var started, completed bool
	var progressed int64
	handlers := &Handlers{
		UploadStartHandler: func(fileName string, totalBytes int64) {
			started = true
			if fileName != "friday.png" || totalBytes != 2500 {
				t.Errorf("start handler got (%q, %d)", fileName, totalBytes)
			}
		},
		UploadProgressHandler: func(fileName string, nwritten int) {
			progressed += int64(nwritten)
		},
		UploadCompleteHandler: func(fileName string, mediaID MediaID) {
			completed = true
			if mediaID != "12345" {
				t.Errorf("complete handler got media id %q", mediaID)
			}
		},
	}
	c := newTestClient(t, srv.URL, srv.URL, handlers)

	id, err := c.UploadMedia(p, 0)
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}
	if id != "12345" {
		t.Errorf("UploadMedia returned media id %q, want \"12345\"", id)
	}

	if mock.initReq["total_bytes"] != "2500" {
		t.Errorf("INIT total_bytes = %q, want \"2500\"", mock.initReq["total_bytes"])
	}
	if mock.initReq["media_type"] != "image/png" {
		t.Errorf("INIT media_type = %q, want \"image/png\"", mock.initReq["media_type"])
	}

	if len(mock.appends) != 3 {
		t.Fatalf("got %d APPEND requests, want 3", len(mock.appends))
	}
	wantOrder := []string{"command", "media_id", "media", "segment_index"}
	var rebuilt bytes.Buffer
	for i, rec := range mock.appends {
		if rec.segmentIndex != i {
			t.Errorf("APPEND %d has segment_index %d", i, rec.segmentIndex)
		}
		if rec.mediaID != "12345" {
			t.Errorf("APPEND %d has media_id %q", i, rec.mediaID)
		}
		if rec.fileName != "friday.png" {
			t.Errorf("APPEND %d has filename %q", i, rec.fileName)
		}
		if len(rec.partOrder) != len(wantOrder) {
			t.Fatalf("APPEND %d has %d parts: %v", i, len(rec.partOrder), rec.partOrder)
		}
		for j, name := range wantOrder {
			if rec.partOrder[j] != name {
				t.Errorf("APPEND %d part %d = %q, want %q", i, j, rec.partOrder[j], name)
			}
		}
		rebuilt.Write(rec.data)
	}
	if !bytes.Equal(rebuilt.Bytes(), data) {
		t.Error("appended segments do not reproduce the original bytes")
	}
	if mock.finals != 1 {
		t.Errorf("got %d FINALIZE requests, want 1", mock.finals)
	}

	if !started || !completed {
		t.Errorf("handlers fired: start=%t complete=%t, want both", started, completed)
	}
	if progressed != 2500 {
		t.Errorf("progress handler reported %d bytes, want 2500", progressed)
	}
}

func TestUploadMediaInitMissingMediaID(t *testing.T) {
	mock := &uploadMock{t: t, initBody: `{"expires_after_secs":86400}`}
	srv := httptest.NewServer(mock)
	defer srv.Close()

	c := newTestClient(t, srv.URL, srv.URL, nil)
	p := tempMediaFile(t, "pic.png", makeData(100))

	_, err := c.UploadMedia(p, 0)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("UploadMedia error = %v, want ErrMalformedResponse", err)
	}
	if len(mock.appends) != 0 {
		t.Errorf("got %d APPEND requests after failed INIT, want 0", len(mock.appends))
	}
	if mock.finals != 0 {
		t.Errorf("got %d FINALIZE requests after failed INIT, want 0", mock.finals)
	}
}

func TestUploadMediaRateLimited(t *testing.T) {
	mock := &uploadMock{
		t:            t,
		initBody:     `{"media_id_string":"777"}`,
		appendStatus: http.StatusTooManyRequests,
	}
	srv := httptest.NewServer(mock)
	defer srv.Close()

	c := newTestClient(t, srv.URL, srv.URL, nil)
	p := tempMediaFile(t, "pic.png", makeData(3000))

	_, err := c.UploadMedia(p, 0)
	if !errors.Is(err, ErrRateLimitExceeded) {
		t.Fatalf("UploadMedia error = %v, want ErrRateLimitExceeded", err)
	}
	if mock.finals != 0 {
		t.Errorf("session finalized despite rate-limited APPEND")
	}
}

func TestUploadMediaIncompatibleFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an incompatible file")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, srv.URL, nil)
	p := tempMediaFile(t, "huge.gif", make([]byte, 15*MB+1))

	_, err := c.UploadMedia(p, 0)
	var ime *IncompatibleMediaError
	if !errors.As(err, &ime) {
		t.Fatalf("UploadMedia error = %v, want IncompatibleMediaError", err)
	}
}

func TestUploadMediaMissingFile(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:0", "http://127.0.0.1:0", nil)
	if _, err := c.UploadMedia("/no/such/file.png", 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UploadMedia error = %v, want ErrNotFound", err)
	}
}
