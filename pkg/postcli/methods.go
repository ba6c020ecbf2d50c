package postcli

import (
	"encoding/json"

	"github.com/fridayd/fridayd/common"
)

func invoke[T any](c *Client, method common.UpdateType, message any) (*T, error) {
	resp, err := c.invoke(method, message)
	if err != nil {
		return nil, err
	}
	var d T
	if len(resp) == 0 {
		return &d, nil
	}
	return &d, json.Unmarshal(resp, &d)
}

// Status reports the daemon's scheduling state.
func (c *Client) Status() (*common.StatusResponse, error) {
	return invoke[common.StatusResponse](c, common.UPDATE_STATUS, nil)
}

// PostOpts overrides the configured message and media for an immediate post.
type PostOpts struct {
	Text  string
	Media []string
}

// Post asks the daemon to publish immediately.
func (c *Client) Post(opts *PostOpts) (*common.PostResponse, error) {
	if opts == nil {
		opts = &PostOpts{}
	}
	return invoke[common.PostResponse](c, common.UPDATE_POST, &common.PostParams{
		Text:  opts.Text,
		Media: opts.Media,
	})
}

// QueueAdd appends a pending post and returns its id.
func (c *Client) QueueAdd(text string, media []string) (int64, error) {
	res, err := invoke[common.QueueAddResponse](c, common.UPDATE_QUEUE_ADD, &common.QueueAddParams{
		Text:  text,
		Media: media,
	})
	if err != nil {
		return 0, err
	}
	return res.Id, nil
}

// QueueList returns pending posts in FIFO order.
func (c *Client) QueueList() ([]common.QueueEntry, error) {
	res, err := invoke[common.QueueListResponse](c, common.UPDATE_QUEUE_LIST, nil)
	if err != nil {
		return nil, err
	}
	return res.Entries, nil
}

// QueueRemove deletes a pending post, reporting whether it existed.
func (c *Client) QueueRemove(id int64) (bool, error) {
	res, err := invoke[common.QueueRemoveResponse](c, common.UPDATE_QUEUE_REMOVE, &common.QueueRemoveParams{Id: id})
	if err != nil {
		return false, err
	}
	return res.Removed, nil
}

// Stop asks the daemon to shut down.
func (c *Client) Stop() (bool, error) {
	res, err := invoke[common.StopResponse](c, common.UPDATE_STOP, nil)
	if err != nil {
		return false, err
	}
	return res.Stopping, nil
}
