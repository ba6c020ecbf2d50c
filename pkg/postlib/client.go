package postlib

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dghubble/oauth1"
)

// Default endpoint roots of the remote platform. Overridable through
// ClientOpts, which the tests use to point the client at local mocks.
const (
	DefaultAPIRoot    = "https://api.twitter.com"
	DefaultUploadRoot = "https://upload.twitter.com/1.1"

	apiVersion = "1.1"
)

// Credentials holds the four OAuth1 credential fields required to sign
// requests. All fields are mandatory.
type Credentials struct {
	ConsumerKey       string `json:"consumer_key"`
	ConsumerSecret    string `json:"consumer_secret"`
	AccessTokenKey    string `json:"access_token_key"`
	AccessTokenSecret string `json:"access_token_secret"`
}

// Validate reports the first missing credential field.
func (c Credentials) Validate() error {
	switch {
	case c.ConsumerKey == "":
		return fmt.Errorf("%w: consumer_key", ErrMissingCredentials)
	case c.ConsumerSecret == "":
		return fmt.Errorf("%w: consumer_secret", ErrMissingCredentials)
	case c.AccessTokenKey == "":
		return fmt.Errorf("%w: access_token_key", ErrMissingCredentials)
	case c.AccessTokenSecret == "":
		return fmt.Errorf("%w: access_token_secret", ErrMissingCredentials)
	}
	return nil
}

// MediaID is the opaque remote identifier of an uploaded media file. The
// canonical representation is the remote's string form.
type MediaID string

// Int64 returns the numeric form of the identifier where the remote
// protocol distinguishes the two, or 0 if it is not numeric.
func (m MediaID) Int64() int64 {
	v, _ := strconv.ParseInt(string(m), 10, 64)
	return v
}

// Account describes the authenticated account.
type Account struct {
	ID       string
	Username string
}

// Post describes a created post.
type Post struct {
	ID   string
	Text string
}

// Optional fields of the posting client.
type ClientOpts struct {
	// HTTPClient is the unsigned transport used for bearer token
	// acquisition and remote media fetches. Defaults to a plain client.
	HTTPClient *http.Client
	// APIRoot overrides the API endpoint root.
	APIRoot string
	// UploadRoot overrides the media upload endpoint root.
	UploadRoot string
	// ChunkSize sets the upload segment size; defaults to DefaultChunkSize.
	ChunkSize int64
	// Handlers to be triggered during uploads and publishing.
	Handlers *Handlers
	Logger   *log.Logger
	// SkipAppToken skips the app-only bearer token acquisition during
	// construction.
	SkipAppToken bool
}

// Client wraps the remote posting API: request signing, chunked media
// uploads and post creation.
type Client struct {
	creds      Credentials
	signed     *http.Client
	plain      *http.Client
	apiRoot    string
	uploadRoot string
	chunkSize  int64
	bearer     string
	handlers   *Handlers
	l          *log.Logger
}

// NewClient creates a posting client. The credentials are validated, an
// OAuth1-signing transport is set up and (unless opts.SkipAppToken) an
// app-only bearer token is obtained immediately so that credential problems
// surface at startup rather than at the first scheduled post.
func NewClient(creds Credentials, opts *ClientOpts) (*Client, error) {
	if opts == nil {
		opts = &ClientOpts{}
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.APIRoot == "" {
		opts.APIRoot = DefaultAPIRoot
	}
	if opts.UploadRoot == "" {
		opts.UploadRoot = DefaultUploadRoot
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.Handlers == nil {
		opts.Handlers = &Handlers{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	opts.Handlers.setDefault(opts.Logger)

	cfg := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessTokenKey, creds.AccessTokenSecret)
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, opts.HTTPClient)

	c := &Client{
		creds:      creds,
		signed:     cfg.Client(ctx, token),
		plain:      opts.HTTPClient,
		apiRoot:    strings.TrimSuffix(opts.APIRoot, "/"),
		uploadRoot: strings.TrimSuffix(opts.UploadRoot, "/"),
		chunkSize:  opts.ChunkSize,
		handlers:   opts.Handlers,
		l:          opts.Logger,
	}
	if !opts.SkipAppToken {
		if err := c.obtainAppToken(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ChunkSize returns the configured upload segment size.
func (c *Client) ChunkSize() int64 {
	return c.chunkSize
}

// obtainAppToken acquires an app-only bearer token using the consumer key
// pair. The token is held for the client's lifetime; no refresh is
// performed.
func (c *Client) obtainAppToken() error {
	basic := base64.StdEncoding.EncodeToString([]byte(
		url.QueryEscape(c.creds.ConsumerKey) + ":" + url.QueryEscape(c.creds.ConsumerSecret),
	))
	body := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequest(http.MethodPost,
		c.apiRoot+"/oauth2/token",
		strings.NewReader(body.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")
	req.Header.Set("Authorization", "Basic "+basic)

	res, err := c.plain.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if err = checkStatus(res); err != nil {
		return err
	}

	var data struct {
		AccessToken string `json:"access_token"`
	}
	if err = json.NewDecoder(res.Body).Decode(&data); err != nil {
		return err
	}
	if data.AccessToken == "" {
		return fmt.Errorf("%w: no access_token in token response", ErrMalformedResponse)
	}
	c.bearer = data.AccessToken
	return nil
}

// request performs a signed API call against the versioned API root. POST
// parameters are sent urlencoded; url.Values.Encode sorts keys
// alphabetically, matching the remote's signature verification expectations.
func (c *Client) request(method, resourcePath string, params url.Values) (map[string]any, error) {
	resourcePath = strings.TrimPrefix(resourcePath, "/")
	endpoint := fmt.Sprintf("%s/%s/%s", c.apiRoot, apiVersion, resourcePath)

	var req *http.Request
	var err error
	if method == http.MethodGet {
		if len(params) > 0 {
			endpoint += "?" + params.Encode()
		}
		req, err = http.NewRequest(method, endpoint, nil)
	} else {
		req, err = http.NewRequest(method, endpoint, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, err
	}

	res, err := c.signed.Do(req)
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

// checkStatus maps response codes onto the error taxonomy: 429 is the
// distinguished rate-limit signal, any other non-2xx is a generic remote
// failure carrying the status code.
func checkStatus(res *http.Response) error {
	if res.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimitExceeded
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &RemoteRequestError{Status: res.StatusCode}
	}
	return nil
}

// Verify checks the credentials against the remote and returns the
// authenticated account.
func (c *Client) Verify() (*Account, error) {
	data, err := c.request(http.MethodGet, "account/verify_credentials.json", nil)
	if err != nil {
		return nil, err
	}
	id, _ := stringField(data, "id_str", "id")
	name, ok := stringField(data, "screen_name")
	if !ok {
		return nil, fmt.Errorf("%w: no screen_name in response body", ErrMalformedResponse)
	}
	return &Account{ID: id, Username: name}, nil
}

// Publish creates a post with the given text and optional attached media
// identifiers, joined with commas as the remote expects. The response must
// contain an id field.
func (c *Client) Publish(text string, mediaIDs []MediaID) (*Post, error) {
	params := url.Values{"status": {text}}
	if len(mediaIDs) > 0 {
		ids := make([]string, len(mediaIDs))
		for i, id := range mediaIDs {
			ids[i] = string(id)
		}
		params.Set("media_ids", strings.Join(ids, ","))
	}

	data, err := c.request(http.MethodPost, "statuses/update.json", params)
	if err != nil {
		return nil, err
	}
	id, ok := stringField(data, "id_str", "id")
	if !ok {
		return nil, fmt.Errorf(`%w: "id" not contained in response body`, ErrMalformedResponse)
	}
	post := &Post{ID: id, Text: text}
	c.handlers.PostCompleteHandler(post)
	return post, nil
}

// stringField extracts the first present key from a decoded JSON object,
// normalizing numeric ids to their decimal string form.
func stringField(data map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := data[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			return t, true
		case float64:
			return strconv.FormatInt(int64(t), 10), true
		case json.Number:
			return t.String(), true
		}
	}
	return "", false
}
