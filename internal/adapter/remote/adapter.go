// Package remote downloads and unpacks the published tournament archive when the
// corpus directory is missing, then reads it like the local source.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"TennisGraph/internal/adapter"
	"TennisGraph/internal/adapter/local"
	"TennisGraph/internal/config"
	"TennisGraph/internal/interfaces"
	"TennisGraph/internal/model"
	"TennisGraph/internal/utils/httpclient"

	"github.com/klauspost/compress/zip"
	"github.com/sirupsen/logrus"
)

const Name = "remote"

func init() {
	adapter.Register(Name, NewRemoteSource)
}

type Source struct {
	cfg        *config.DataConfig
	httpClient *http.Client
	local      interfaces.DataSource
	logger     *logrus.Logger
}

func NewRemoteSource(cfg *config.DataConfig, logger *logrus.Logger) interfaces.DataSource {
	return &Source{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		local:      local.NewLocalSource(cfg, logger),
		logger:     logger,
	}
}

func (s *Source) GetName() string {
	return Name
}

func (s *Source) Fetch(ctx context.Context, ref model.CorpusRef) (*model.Corpus, error) {
	dir := local.CorpusDir(s.cfg.Dir, ref.ID)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		if err := s.download(ctx, ref.ID); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("corpus directory %s: %w", dir, err)
	}
	return s.local.Fetch(ctx, ref)
}

// ArchiveURL <archive_url>/<id>.zip
func (s *Source) ArchiveURL(id string) string {
	return strings.TrimRight(s.cfg.ArchiveURL, "/") + "/" + id + ".zip"
}

func (s *Source) download(ctx context.Context, id string) error {
	archiveURL := s.ArchiveURL(id)
	logger := s.logger.WithFields(logrus.Fields{"tournament": id, "url": archiveURL})
	logger.Info("corpus missing, downloading archive")

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.cfg.Dir, id+"-*.zip")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil {
			logger.WithError(err).Warn("remove temp archive failed")
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", archiveURL, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.WithError(err).Warn("close response body failed")
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", archiveURL, resp.Status)
	}
	size, err := io.Copy(tmp, resp.Body)
	if err != nil {
		return fmt.Errorf("download %s: %w", archiveURL, err)
	}

	files, err := Extract(tmp, size, s.cfg.Dir)
	if err != nil {
		return fmt.Errorf("extract %s: %w", archiveURL, err)
	}
	logger.WithFields(logrus.Fields{"bytes": size, "files": files}).Info("corpus archive extracted")
	return nil
}

// Extract unpacks a zip archive below dest and returns the number of files written.
// Entries escaping dest are rejected.
func Extract(r io.ReaderAt, size int64, dest string) (int, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return 0, err
	}
	root, err := filepath.Abs(dest)
	if err != nil {
		return 0, err
	}

	files := 0
	for _, f := range zr.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return files, fmt.Errorf("entry %q escapes %s", f.Name, dest)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return files, err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return files, err
		}
		if err := extractFile(f, target); err != nil {
			return files, fmt.Errorf("entry %q: %w", f.Name, err)
		}
		files++
	}
	return files, nil
}

func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
