// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package groups

import (
	"context"
	"fmt"
	"syscall"

	"github.com/janderssonse/skid/internal/domain"
	"github.com/janderssonse/skid/internal/stringutil"
)

// DefaultGroupFile is the system group database.
const DefaultGroupFile = "/etc/group"

const opCompatibleGIDs = "compatible-gids"

// Options configures a Resolver.
type Options struct {
	// GroupFile is the group(5) file to scan. Defaults to DefaultGroupFile.
	GroupFile string

	// MaxRecords caps the number of supplementary matches. Defaults to
	// domain.DefaultMaxRecords.
	MaxRecords int

	// Logger receives verbose diagnostics. Defaults to domain.NopLogger.
	Logger domain.Logger
}

// Resolver computes compatible GID sets. It keeps no state between calls and
// re-reads the group file every time, so it is safe for concurrent use when
// its collaborators are.
type Resolver struct {
	files      domain.FileReader
	identity   domain.IdentityResolver
	groupFile  string
	maxRecords int
	log        domain.Logger
}

// NewResolver creates a resolver over the given collaborators.
func NewResolver(files domain.FileReader, identity domain.IdentityResolver, opts Options) *Resolver {
	if opts.GroupFile == "" {
		opts.GroupFile = DefaultGroupFile
	}

	if opts.MaxRecords <= 0 {
		opts.MaxRecords = domain.DefaultMaxRecords
	}

	if opts.Logger == nil {
		opts.Logger = domain.NopLogger{}
	}

	return &Resolver{
		files:      files,
		identity:   identity,
		groupFile:  opts.GroupFile,
		maxRecords: opts.MaxRecords,
		log:        opts.Logger,
	}
}

// GroupFile returns the path scanned by the resolver.
func (r *Resolver) GroupFile() string {
	return r.groupFile
}

// CompatibleGIDs returns every GID username is compatible with: the GIDs of
// all groups listing username as a member, in file order, followed by the
// primary GID exactly once. Malformed records are skipped. Any failure yields
// a nil result and a *domain.GroupError.
func (r *Resolver) CompatibleGIDs(ctx context.Context, username string) (*domain.CompatibleGIDs, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, domain.NewGroupError(domain.KindInvalidArgument, opCompatibleGIDs, username, err)
	}

	primary, err := r.identity.PrimaryGID(ctx, username)
	if err != nil {
		return nil, domain.NewGroupError(domain.KindIdentityResolution, opCompatibleGIDs, username, err)
	}

	data, err := r.files.ReadFile(r.groupFile)
	if err != nil {
		return nil, domain.NewGroupError(domain.KindGroupFileUnavailable, opCompatibleGIDs, username,
			fmt.Errorf("%s: %w", r.groupFile, err))
	}

	memberships, err := r.scan(string(data), username, primary)
	if err != nil {
		return nil, domain.NewGroupError(domain.KindCapacityExceeded, opCompatibleGIDs, username, err)
	}

	r.log.Progressf("%s: %d supplementary group(s), primary gid %d", username, len(memberships), primary)

	return domain.NewCompatibleGIDs(username, primary, memberships), nil
}

// CurrentCompatibleGIDs resolves the compatible GIDs of the calling user.
func (r *Resolver) CurrentCompatibleGIDs(ctx context.Context) (*domain.CompatibleGIDs, error) {
	username, err := r.identity.CurrentUsername(ctx)
	if err != nil {
		return nil, domain.NewGroupError(domain.KindIdentityResolution, opCompatibleGIDs, "", err)
	}

	return r.CompatibleGIDs(ctx, username)
}

// IsCompatible reports whether gid is one of username's compatible GIDs.
func (r *Resolver) IsCompatible(ctx context.Context, username string, gid domain.GID) (bool, error) {
	set, err := r.CompatibleGIDs(ctx, username)
	if err != nil {
		return false, err
	}

	return set.Contains(gid), nil
}

// scan collects the memberships of username in data, excluding records whose
// GID equals primary.
func (r *Resolver) scan(data, username string, primary domain.GID) ([]domain.Membership, error) {
	var memberships []domain.Membership

	lineNo := 0

	for record := range Lines(data) {
		lineNo++

		if !ValidRecord(record) {
			if record != "" {
				r.log.Progressf("%s:%d: skipping record: %v", r.groupFile, lineNo, domain.ErrMalformedRecord)
			}

			continue
		}

		gid, ok := MatchUser(username, record)
		if !ok {
			continue
		}

		if gid == primary {
			continue
		}

		if len(memberships) >= r.maxRecords {
			return nil, fmt.Errorf("more than %d matching records: %w", r.maxRecords, syscall.ENOBUFS)
		}

		name, _ := Field(record, FieldName)
		memberships = append(memberships, domain.Membership{Group: name, GID: gid})
	}

	return memberships, nil
}

// ValidateUsername rejects names that cannot appear in a group(5) user list.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("empty username: %w", syscall.EINVAL)
	}

	if stringutil.ContainsAny(username, fieldSeparator, memberSeparator, '\n') {
		return fmt.Errorf("username %q contains a reserved character: %w", username, syscall.EINVAL)
	}

	return nil
}
