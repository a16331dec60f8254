// Package engine implements one synchronization pass over a working copy.
//
// A Cycle first drains local changes through a ChangeCommitter, committing
// until the working tree reports clean, then measures the divergence from
// upstream and hands the distance to RemoteSync:
//
//	distance < 0  -> push
//	distance > 0  -> pull --rebase
//	distance == 0 -> nothing
//
// Divergence is never measured and nothing is pushed or pulled while the
// tree is dirty. A diverged branch reports only its behind count, so the
// cycle rebases onto upstream and the local commits go out on a later cycle.
//
// The drain terminates only once edits stop arriving. ChangeCommitter.MaxRounds
// bounds it; a cycle that exceeds the bound fails with ErrTreeNotQuiescent.
//
// Before touching the tree a Cycle checks for a rebase or merge that stopped
// on a conflict. While one is pending every cycle fails with
// ErrIntegrationInProgress, so conflict markers are never committed.
//
// Any failing step ends the cycle and is returned to the caller. Nothing is
// retried within a cycle.
package engine
