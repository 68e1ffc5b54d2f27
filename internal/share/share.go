package share

import (
	"net/url"
	"strings"
)

const composeURL = "https://warpcast.com/~/compose"

// DefaultRequester names the sender when the host app gives no user context.
const DefaultRequester = "Someone"

// Filename is the suggested download name for a composite of username.
func Filename(username string) string {
	return "fart-on-" + username + ".jpg"
}

// Text is the cast body offered when sharing.
func Text(username string) string {
	return "Just farted on @" + username + "!"
}

// Requester returns name, or DefaultRequester when it is blank.
func Requester(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return DefaultRequester
}

// ImageURL is the public address of the server-rendered composite.
func ImageURL(baseURL, username, from string) string {
	u := strings.TrimRight(baseURL, "/") + "/api/fart/" + url.PathEscape(username)
	if from = strings.TrimSpace(from); from != "" {
		u += "?" + url.Values{"from": {from}}.Encode()
	}
	return u
}

// ComposeURL builds a Warpcast compose intent with text and an optional embed.
func ComposeURL(text, embed string) string {
	q := url.Values{}
	q.Set("text", text)
	if embed != "" {
		q.Add("embeds[]", embed)
	}
	return composeURL + "?" + q.Encode()
}

// Link describes everything a client needs to share a composite.
type Link struct {
	Text       string `json:"text"`
	ImageURL   string `json:"image_url"`
	ComposeURL string `json:"compose_url"`
	Filename   string `json:"filename"`
}

func NewLink(baseURL, username, from string) Link {
	img := ImageURL(baseURL, username, from)
	text := Text(username)
	return Link{
		Text:       text,
		ImageURL:   img,
		ComposeURL: ComposeURL(text, img),
		Filename:   Filename(username),
	}
}
