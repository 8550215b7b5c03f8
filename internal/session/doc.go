// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the conversation session and active user.
//
// A session id correlates chat requests into one server-side thread.
// It is regenerated on user switch, user creation, and reconnect, and
// kept stable otherwise. User identity changes never cancel an
// in-flight stream; the conversation package's fencing handles the
// leftover events.
package session
