package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/kjstillabower/weather-forecast-service/internal/apidoc"
)

func docsAction(ctx context.Context, cmd *cli.Command) error {
	docs, err := apidoc.NewRegistry(apidoc.DefaultDocuments...)
	if err != nil {
		return fmt.Errorf("api docs: %w", err)
	}
	key := cmd.String("api-version")

	var out []byte
	switch format := strings.ToLower(strings.TrimSpace(cmd.String("format"))); format {
	case "json":
		doc, ok := docs.Document(key)
		if !ok {
			return fmt.Errorf("%w: %q", apidoc.ErrUnknownVersion, key)
		}
		if out, err = json.MarshalIndent(doc, "", "  "); err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		out = append(out, '\n')
	case "yaml":
		if out, err = docs.YAML(key); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}

	_, err = cmd.Root().Writer.Write(out)
	return err
}
