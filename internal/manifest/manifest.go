package manifest

import (
	"strings"

	"github.com/alexpaden/fartcaster/internal/config"
)

type AccountAssociation struct {
	Header    string `json:"header"`
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

type Frame struct {
	Version               string   `json:"version"`
	Name                  string   `json:"name"`
	IconURL               string   `json:"iconUrl"`
	HomeURL               string   `json:"homeUrl"`
	ImageURL              string   `json:"imageUrl"`
	ButtonTitle           string   `json:"buttonTitle"`
	WebhookURL            string   `json:"webhookUrl"`
	SplashImageURL        string   `json:"splashImageUrl"`
	SplashBackgroundColor string   `json:"splashBackgroundColor"`
	PrimaryCategory       string   `json:"primaryCategory"`
	Tags                  []string `json:"tags"`
}

// Manifest is the document served at /.well-known/farcaster.json.
type Manifest struct {
	AccountAssociation AccountAssociation `json:"accountAssociation"`
	Frame              Frame              `json:"frame"`
}

func New(baseURL string, assoc config.ManifestConfig) Manifest {
	appURL := strings.TrimRight(baseURL, "/")
	return Manifest{
		AccountAssociation: AccountAssociation{
			Header:    assoc.Header,
			Payload:   assoc.Payload,
			Signature: assoc.Signature,
		},
		Frame: Frame{
			Version:               "1",
			Name:                  "FartCaster",
			IconURL:               appURL + "/icon.png",
			HomeURL:               appURL,
			ImageURL:              appURL + "/og.png",
			ButtonTitle:           "Open",
			WebhookURL:            appURL + "/api/webhook",
			SplashImageURL:        appURL + "/splash.png",
			SplashBackgroundColor: "#555555",
			PrimaryCategory:       "entertainment",
			Tags:                  []string{"fart", "fun", "social", "memes", "prank"},
		},
	}
}
