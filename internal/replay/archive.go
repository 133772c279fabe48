package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"cloud.google.com/go/storage"
)

// Archiver uploads a finished game's frame log and a rendered snapshot
// of its final position to a storage bucket.
type Archiver struct {
	Bucket    string
	EngineURL string
	Log       *slog.Logger

	client *storage.Client
}

// NewArchiver builds an Archiver writing to the named bucket. The
// storage client authenticates with application default credentials.
func NewArchiver(ctx context.Context, bucket string, log *slog.Logger) (*Archiver, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Archiver{Bucket: bucket, Log: log, client: client}, nil
}

// Close releases the underlying storage client.
func (a *Archiver) Close() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}

// Archive collects gameID's frames from the engine and uploads two
// objects: <gameID>.json with the full frame log, and <gameID>.png with
// the final position rendered. Returns the first error; a failed PNG
// render doesn't prevent the frame log from being archived since the
// log is the part that can't be regenerated later.
func (a *Archiver) Archive(ctx context.Context, gameID string) error {
	frames, err := CollectFrames(ctx, a.EngineURL, gameID)
	if err != nil {
		return fmt.Errorf("collect frames for game %s: %w", gameID, err)
	}
	if len(frames) == 0 {
		a.Log.Warn("no frames to archive", "game_id", gameID)
		return nil
	}
	a.Log.Info("collected frames", "game_id", gameID, "turns", len(frames))

	frameLog, err := json.Marshal(frames)
	if err != nil {
		return fmt.Errorf("marshal frame log: %w", err)
	}
	if err := a.upload(ctx, fmt.Sprintf("%s.json", gameID), "application/json", frameLog); err != nil {
		return err
	}

	snapshot, err := RenderPNG(frames[len(frames)-1])
	if err != nil {
		return fmt.Errorf("render final frame: %w", err)
	}
	if err := a.upload(ctx, fmt.Sprintf("%s.png", gameID), "image/png", snapshot); err != nil {
		return err
	}

	a.Log.Debug("game archived", "game_id", gameID)
	return nil
}

func (a *Archiver) upload(ctx context.Context, object, contentType string, data []byte) error {
	writer := a.client.Bucket(a.Bucket).Object(object).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("write %s to bucket: %w", object, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer for %s: %w", object, err)
	}
	return nil
}
