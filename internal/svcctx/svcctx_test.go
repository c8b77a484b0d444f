package svcctx

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jackzampolin/markscan/internal/home"
	"github.com/jackzampolin/markscan/internal/session"
)

func TestServicesFrom(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		ctx := context.Background()
		if ServicesFrom(ctx) != nil {
			t.Error("expected nil services")
		}
		if SessionFrom(ctx) != nil || LoggerFrom(ctx) != nil || HomeFrom(ctx) != nil || ConfigManagerFrom(ctx) != nil {
			t.Error("extractors should return nil without services")
		}
	})

	t.Run("attached services", func(t *testing.T) {
		logger := slog.Default()
		dir, _ := home.New(t.TempDir())
		sess := session.New(nil, logger)

		ctx := WithServices(context.Background(), &Services{
			Session: sess,
			Logger:  logger,
			Home:    dir,
		})

		if SessionFrom(ctx) != sess {
			t.Error("SessionFrom returned wrong session")
		}
		if LoggerFrom(ctx) != logger {
			t.Error("LoggerFrom returned wrong logger")
		}
		if HomeFrom(ctx) != dir {
			t.Error("HomeFrom returned wrong home")
		}
	})
}
