// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// User is the single active identity record held client-side. Credentials
// are never verified against a server; a User exists purely because a
// login or signup form was submitted with all fields present.
type User struct {
	Name        string `json:"name"`
	FishermanID string `json:"fishermanId"`
	Location    string `json:"location"`
}

// Valid reports whether every field is non-empty. A persisted session must
// always satisfy this.
func (u User) Valid() bool {
	return u.Name != "" && u.FishermanID != "" && u.Location != ""
}
