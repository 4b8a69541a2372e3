package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/config"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SFTP stores objects on a file server reachable over SSH. Each bucket is a
// directory under RemoteDir, served publicly from PublicBaseURL.
type SFTP struct {
	cfg config.SFTPStorageConfig
	log zerolog.Logger
}

// NewSFTP creates an SFTP backend
func NewSFTP(cfg config.SFTPStorageConfig, log zerolog.Logger) *SFTP {
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}
	return &SFTP{
		cfg: cfg,
		log: log.With().Str("component", "sftp-storage").Logger(),
	}
}

func (s *SFTP) validate() error {
	if s.cfg.Host == "" || s.cfg.User == "" || s.cfg.Password == "" {
		return fmt.Errorf("%w: missing SFTP_HOST / SFTP_USER / SFTP_PASS", ErrNotConfigured)
	}
	if s.cfg.PublicBaseURL == "" {
		return fmt.Errorf("%w: missing SFTP_PUBLIC_BASE_URL", ErrNotConfigured)
	}
	if !s.cfg.InsecureIgnoreHostKey && s.cfg.KnownHostsFile == "" {
		return fmt.Errorf("%w: set SFTP_KNOWN_HOSTS or SFTP_INSECURE_IGNORE_HOST_KEY", ErrNotConfigured)
	}
	return nil
}

func (s *SFTP) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if s.cfg.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	cb, err := knownhosts.New(s.cfg.KnownHostsFile)
	if err != nil {
		return nil, fmt.Errorf("sftp: load known hosts: %w", err)
	}
	return cb, nil
}

// dial opens the SSH connection, giving up when ctx is done
func (s *SFTP) dial(ctx context.Context) (*ssh.Client, error) {
	cb, err := s.hostKeyCallback()
	if err != nil {
		return nil, err
	}

	sshCfg := &ssh.ClientConfig{
		User:            s.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(s.cfg.Password)},
		HostKeyCallback: cb,
		Timeout:         20 * time.Second,
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	select {
	case <-ctx.Done():
		// close the late connection so the goroutine does not leak it
		go func() {
			if r := <-ch; r.client != nil {
				r.client.Close()
			}
		}()
		return nil, fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("sftp: dial error: %w", r.err)
		}
		return r.client, nil
	}
}

// Upload writes the object to {RemoteDir}/{bucket}/{name}
func (s *SFTP) Upload(ctx context.Context, bucket, name, contentType string, r io.Reader) (string, error) {
	if err := s.validate(); err != nil {
		return "", err
	}

	sshClient, err := s.dial(ctx)
	if err != nil {
		return "", err
	}
	defer sshClient.Close()

	client, err := sftp.NewClient(sshClient)
	if err != nil {
		return "", fmt.Errorf("sftp: new client: %w", err)
	}
	defer client.Close()

	dir := path.Join(s.cfg.RemoteDir, bucket)
	if err := client.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("sftp: mkdir %s: %w", dir, err)
	}

	remotePath := path.Join(dir, name)
	// O_EXCL keeps an existing object from being overwritten
	dst, err := client.OpenFile(remotePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
	if err != nil {
		return "", fmt.Errorf("sftp: create remote file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, r)
	if err != nil {
		return "", fmt.Errorf("sftp: upload copy: %w", err)
	}

	s.log.Info().
		Str("bucket", bucket).
		Str("name", name).
		Str("content_type", contentType).
		Int64("bytes", n).
		Msg("Object uploaded")

	return s.PublicURL(bucket, name), nil
}

// PublicURL returns where an uploaded object is served from
func (s *SFTP) PublicURL(bucket, name string) string {
	return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + bucket + "/" + name
}
