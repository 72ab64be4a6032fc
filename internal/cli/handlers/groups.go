// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/janderssonse/skid/internal/domain"
	"github.com/janderssonse/skid/internal/groups"
)

// GroupHandler runs the group membership commands.
type GroupHandler struct {
	*BaseHandler

	Resolver  *groups.Resolver
	Sentinels int
}

// NewGroupHandler creates a handler over resolver.
func NewGroupHandler(base *BaseHandler, resolver *groups.Resolver, sentinels int) *GroupHandler {
	return &GroupHandler{
		BaseHandler: base,
		Resolver:    resolver,
		Sentinels:   sentinels,
	}
}

// resolve computes the compatible GIDs of username, or of the calling user when username is empty.
func (h *GroupHandler) resolve(ctx context.Context, username string) (*domain.CompatibleGIDs, error) {
	if username == "" {
		return h.Resolver.CurrentCompatibleGIDs(ctx)
	}

	return h.Resolver.CompatibleGIDs(ctx, username)
}

// terminatedGIDs is the JSON view of the sentinel form.
type terminatedGIDs struct {
	Username   string       `json:"username"`
	PrimaryGID domain.GID   `json:"primary_gid"`
	GIDs       []domain.GID `json:"gids"`
	Sentinels  int          `json:"sentinels"`
}

// GIDs prints the compatible GIDs of username.
func (h *GroupHandler) GIDs(ctx context.Context, username string, terminated bool) error {
	set, err := h.resolve(ctx, username)
	if err != nil {
		return h.ExitError(err)
	}

	gids := set.GIDs

	var data any = set

	if terminated {
		gids = set.Terminated(h.Sentinels)
		data = terminatedGIDs{
			Username:   set.Username,
			PrimaryGID: set.PrimaryGID,
			GIDs:       gids,
			Sentinels:  max(h.Sentinels, 0),
		}
	}

	sep := " "
	if h.Plain {
		sep = "\n"
	}

	if err := h.GetOutput().Success(joinGIDs(gids, sep), data); err != nil {
		return domain.NewExitError(domain.ExitGeneralError, "failed to output results", err)
	}

	return nil
}

// Groups prints a table of username's memberships, primary group last.
func (h *GroupHandler) Groups(ctx context.Context, username string) error {
	set, err := h.resolve(ctx, username)
	if err != nil {
		return h.ExitError(err)
	}

	if h.JSON {
		if err := h.GetOutput().Success("", set); err != nil {
			return domain.NewExitError(domain.ExitGeneralError, "failed to output results", err)
		}

		return nil
	}

	rows := make([][]string, 0, set.Len())
	for _, m := range set.Memberships {
		rows = append(rows, []string{m.Group, formatGID(m.GID), "member"})
	}

	rows = append(rows, []string{"-", formatGID(set.PrimaryGID), "primary"})

	if err := h.GetOutput().Table([]string{"GROUP", "GID", "SOURCE"}, rows); err != nil {
		return domain.NewExitError(domain.ExitGeneralError, "failed to output results", err)
	}

	return nil
}

// Check reports whether gidArg is compatible with username.
// It returns an ExitError with ExitNotFoundError when it is not.
func (h *GroupHandler) Check(ctx context.Context, gidArg, username string) error {
	gid, err := ParseGIDArg(gidArg)
	if err != nil {
		return err
	}

	set, err := h.resolve(ctx, username)
	if err != nil {
		return h.ExitError(err)
	}

	result := domain.CheckResult{
		Username:   set.Username,
		GID:        gid,
		Compatible: set.Contains(gid),
	}

	if err := h.report(result); err != nil {
		return err
	}

	// The verdict is on stdout, or only in the exit code when quiet.
	if !result.Compatible {
		return domain.NewExitError(domain.ExitNotFoundError, "", nil)
	}

	return nil
}

// report prints the verdict of a check. Quiet text output prints nothing.
func (h *GroupHandler) report(result domain.CheckResult) error {
	output := h.GetOutput()
	if output.IsQuiet() && !h.JSON {
		return nil
	}

	verdict := "compatible"
	if !result.Compatible {
		verdict = "not compatible"
	}

	message := fmt.Sprintf("gid %d is %s with user %s", result.GID, verdict, result.Username)
	if h.Plain {
		message = strconv.FormatBool(result.Compatible)
	}

	if err := output.Success(message, result); err != nil {
		return domain.NewExitError(domain.ExitGeneralError, "failed to output results", err)
	}

	return nil
}

// Match runs the membership matcher on a single literal record.
// It returns an ExitError with ExitNotFoundError when the record does not match.
func (h *GroupHandler) Match(username, record string) error {
	gid, ok := groups.MatchUser(username, record)

	result := domain.MatchResult{
		Username: username,
		Record:   record,
		Matched:  ok,
		GID:      gid,
	}

	output := h.GetOutput()

	if h.JSON || ok {
		if err := output.Success(formatGID(gid), result); err != nil {
			return domain.NewExitError(domain.ExitGeneralError, "failed to output results", err)
		}
	}

	if ok {
		return nil
	}

	if !h.JSON {
		_ = output.Error(fmt.Sprintf("user %q does not match record %q", username, record))
	}

	return domain.NewExitError(domain.ExitNotFoundError, "", nil)
}

// ParseGIDArg parses a decimal GID command line argument.
func ParseGIDArg(arg string) (domain.GID, error) {
	value, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, domain.NewExitError(domain.ExitUsageError, fmt.Sprintf("invalid GID %q", arg), err)
	}

	return domain.GID(value), nil
}

func formatGID(gid domain.GID) string {
	return strconv.FormatUint(uint64(gid), 10)
}

func joinGIDs(gids []domain.GID, sep string) string {
	parts := make([]string, len(gids))
	for i, gid := range gids {
		parts[i] = formatGID(gid)
	}

	return strings.Join(parts, sep)
}
