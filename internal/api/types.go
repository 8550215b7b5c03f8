// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the OmniEmployee backend.
package api

import "encoding/json"

// =============================================================================
// CHAT TYPES
// =============================================================================

// ChatRequest is the request body for a non-streaming chat call.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the response to a non-streaming chat call.
type ChatResponse struct {
	Response  string            `json:"response"`
	ToolCalls []ToolCallSummary `json:"tool_calls"`
	SessionID string            `json:"session_id"`
}

// ToolCallSummary describes one tool invocation as reported by the
// terminal done event or the non-streaming chat response. Results are
// not carried here; they arrive through tool_result events.
type ToolCallSummary struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// =============================================================================
// AGENT INFO
// =============================================================================

// AgentInfo describes the backend agent's capabilities.
type AgentInfo struct {
	Provider         string   `json:"provider"`
	Model            string   `json:"model"`
	Skills           []string `json:"skills"`
	Tools            []string `json:"tools"`
	MemoryEnabled    bool     `json:"memory_enabled"`
	KnowledgeEnabled bool     `json:"knowledge_enabled"`
}

// =============================================================================
// MEMORY TYPES
// =============================================================================

// MemoryItem is a single item from the tiered memory system.
type MemoryItem struct {
	ID      string  `json:"id"`
	Content string  `json:"content"`
	Energy  float64 `json:"energy"`
	Tier    string  `json:"tier"`
}

// MemoryContext is the set of memory items relevant to a query.
type MemoryContext struct {
	Items   []MemoryItem `json:"items"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// MemoryStats holds per-tier memory system statistics.
type MemoryStats struct {
	L1Count       int `json:"l1_count"`
	L2VectorCount int `json:"l2_vector_count"`
	L2GraphNodes  int `json:"l2_graph_nodes"`
	L2GraphEdges  int `json:"l2_graph_edges"`
	L3Facts       int `json:"l3_facts"`
	L3Links       int `json:"l3_links"`
}

// =============================================================================
// KNOWLEDGE TYPES
// =============================================================================

// KnowledgeTriple is one subject-predicate-object fact from the
// knowledge store.
type KnowledgeTriple struct {
	ID         string  `json:"id"`
	Subject    string  `json:"subject"`
	Predicate  string  `json:"predicate"`
	Object     string  `json:"object"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// KnowledgeTriples is the response to a triples listing.
type KnowledgeTriples struct {
	Triples []KnowledgeTriple `json:"triples"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// KnowledgeStats holds knowledge store statistics. Status is
// "unavailable" when the store is not configured.
type KnowledgeStats struct {
	TotalTriples         int    `json:"total_triples"`
	UniqueSubjects       int    `json:"unique_subjects"`
	UniquePredicates     int    `json:"unique_predicates"`
	TotalUpdates         int    `json:"total_updates"`
	PendingConfirmations int    `json:"pending_confirmations"`
	Status               string `json:"status,omitempty"`
}

// =============================================================================
// USER TYPES
// =============================================================================

// UserList is the response to a user listing.
type UserList struct {
	Users   []string `json:"users"`
	Current string   `json:"current"`
}

// UserResponse is the response to a user switch or create call.
type UserResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"user_id"`
	Error   string `json:"error,omitempty"`
}
