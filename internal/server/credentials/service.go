// Package credentials implements the admin credential store.
//
// There is no user table anywhere in the system. The single shared admin
// credential is materialized as a zero-byte marker object in the remote
// store whose name encodes the password digest: verification is a
// metadata-only existence check on the recomputed name. The object's
// existence, not its content, is the signal.
package credentials

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/signage/internal/blobstore"
	"github.com/dmitrijs2005/signage/internal/common"
	"github.com/dmitrijs2005/signage/internal/cryptox"
	"github.com/dmitrijs2005/signage/internal/logging"
	"github.com/dmitrijs2005/signage/internal/server/config"
)

const (
	// MinPasswordLength is the minimum accepted admin password length.
	MinPasswordLength = 4

	markerPrefix = "auth-"
	markerSuffix = ".key"
)

// Service exposes setup, verification, existence and rotation of the single
// admin credential.
type Service struct {
	store       blobstore.ObjectStore
	salt        string
	remoteCheck bool
	timeout     time.Duration
	logger      logging.Logger
}

func NewService(store blobstore.ObjectStore, cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		store:       store,
		salt:        cfg.AuthSalt,
		remoteCheck: cfg.AuthRemoteCheck,
		timeout:     cfg.StoreTimeout,
		logger:      logger.With("module", "credentials"),
	}
}

func (s *Service) markerKey(password string) string {
	return markerPrefix + cryptox.CredentialDigest(password, s.salt) + markerSuffix
}

func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// Setup establishes the admin credential by writing its marker object.
// Passwords shorter than MinPasswordLength are rejected before any network
// I/O. Overwriting an identical marker is harmless; a different password
// adds a new marker without removing old ones (use Rotate for that).
func (s *Service) Setup(ctx context.Context, password string) error {
	if len(password) < MinPasswordLength {
		return common.ErrWeakPassword
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if _, err := s.store.Put(ctx, s.markerKey(password), "application/octet-stream", nil); err != nil {
		return fmt.Errorf("writing credential marker: %w", err)
	}

	s.logger.Info(ctx, "admin credential set")
	return nil
}

// Verify recomputes the marker name for password and checks its existence.
// A missing marker is indistinguishable from "no credential ever set"; the
// caller decides what that means using Exists.
func (s *Service) Verify(ctx context.Context, password string) (bool, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	exists, err := s.store.Head(ctx, s.markerKey(password))
	if err != nil {
		return false, fmt.Errorf("checking credential marker: %w", err)
	}
	return exists, nil
}

// Exists reports whether any admin credential has been configured.
//
// When the remote check is disabled by configuration, it always reports
// false, reproducing the original system's behavior of forcing setup mode
// on every fresh session.
func (s *Service) Exists(ctx context.Context) (bool, error) {
	if !s.remoteCheck {
		return false, nil
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	keys, err := s.store.List(ctx, markerPrefix)
	if err != nil {
		return false, fmt.Errorf("listing credential markers: %w", err)
	}
	return len(keys) > 0, nil
}

// Rotate replaces the credential: it verifies oldPassword, writes the marker
// for newPassword and deletes the old marker, so at most one marker survives.
// Returns common.ErrUnauthorized when oldPassword does not verify.
func (s *Service) Rotate(ctx context.Context, oldPassword, newPassword string) error {
	ok, err := s.Verify(ctx, oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrUnauthorized
	}

	if err := s.Setup(ctx, newPassword); err != nil {
		return err
	}

	oldKey := s.markerKey(oldPassword)
	if oldKey == s.markerKey(newPassword) {
		return nil
	}

	dctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.store.Delete(dctx, oldKey); err != nil {
		// The new credential already works; a dangling old marker only means
		// the old password still verifies until the delete is retried.
		s.logger.Warn(ctx, "failed to delete old credential marker", "error", err)
		return fmt.Errorf("deleting old credential marker: %w", err)
	}

	s.logger.Info(ctx, "admin credential rotated")
	return nil
}
