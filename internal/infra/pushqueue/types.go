package pushqueue

import "time"

type AlertTask struct {
	TaskID    string `json:"-"`
	UserID    string `json:"-"`
	SessionID string `json:"-"`

	Title              string            `json:"title"`
	Body               string            `json:"body"`
	Tag                string            `json:"tag"`
	Tier               string            `json:"tier"`
	RequireInteraction bool              `json:"require_interaction"`
	Vibrate            []int             `json:"vibrate,omitempty"`
	Data               map[string]string `json:"data,omitempty"`
}

type PushResponse struct {
	Name       string    `json:"name"`
	CreateTime time.Time `json:"create_time"`
}

type sitetrackPushRequest struct {
	Push sitetrackPush `json:"push"`
}

type sitetrackPush struct {
	HTTPRequest sitetrackHTTPRequest `json:"httpRequest"`
}

type sitetrackHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type sitetrackPushResponse struct {
	Name       string `json:"name"`
	CreateTime string `json:"createTime"`
}
