package yandex

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"os"
	"speakmate/app/config"

	"github.com/samber/do"
	ycsdk "github.com/yandex-cloud/go-sdk"
	"github.com/yandex-cloud/go-sdk/iamkey"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"
)

const ttsEndpoint = "tts.api.cloud.yandex.net:443"

// Client is the shared handle to Yandex Cloud AI services.
// Translation and recognition go through the official SDK; the v3
// synthesizer has no SDK wrapper, so its gRPC channel is dialed
// directly and authorized with IAM tokens minted by the same SDK.
type Client struct {
	cfg     *config.Config
	sdk     *ycsdk.SDK
	ttsConn *grpc.ClientConn
}

func NewClient(di *do.Injector) (*Client, error) {
	ctx := do.MustInvoke[context.Context](di)
	cfg := do.MustInvoke[*config.Config](di)

	keyBytes, err := os.ReadFile(cfg.Yandex.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("could not read service account key: %w", err)
	}

	var key iamkey.Key
	if err = json.Unmarshal(keyBytes, &key); err != nil {
		return nil, fmt.Errorf("could not parse service account key: %w", err)
	}

	creds, err := ycsdk.ServiceAccountKey(&key)
	if err != nil {
		return nil, fmt.Errorf("could not create service account key: %w", err)
	}

	sdk, err := ycsdk.Build(ctx, ycsdk.Config{
		Credentials: creds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Yandex SDK: %w", err)
	}

	ttsConn, err := grpc.NewClient(ttsEndpoint,
		grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{})))
	if err != nil {
		return nil, fmt.Errorf("failed to create tts channel: %w", err)
	}

	return &Client{
		cfg:     cfg,
		sdk:     sdk,
		ttsConn: ttsConn,
	}, nil
}

// authorize attaches a fresh IAM token and the billing folder
// to an outgoing synthesizer call.
func (y *Client) authorize(ctx context.Context) (context.Context, error) {
	token, err := y.sdk.CreateIAMToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create IAM token: %w", err)
	}

	return metadata.AppendToOutgoingContext(ctx,
		"authorization", "Bearer "+token.IamToken,
		"x-folder-id", y.cfg.Yandex.FolderID,
	), nil
}

func (y *Client) Shutdown() error {
	return y.ttsConn.Close()
}
