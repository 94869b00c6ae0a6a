package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"
)

// NewValkeyClient connects to Valkey and verifies the connection with a
// ping before handing the client out.
func NewValkeyClient(addr, password string, useTLS bool) (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{addr},
		Password:         password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if useTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey")
	return client, nil
}
