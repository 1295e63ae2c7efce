// Package document defines the document model shared by the ingestion
// pipeline, the index, and the search engine. A Document is a flat record
// with a type discriminator and a typed metadata block; the index layer
// treats metadata opaquely except for named field lookups.
package document

import "time"

// DocType discriminates the concrete kind of a document. It is immutable
// after creation.
type DocType string

const (
	TypePost  DocType = "post"
	TypeUser  DocType = "user"
	TypeSpace DocType = "space"
	TypeTool  DocType = "tool"
	TypeEvent DocType = "event"
)

// Valid reports whether t is one of the known document types.
func (t DocType) Valid() bool {
	switch t {
	case TypePost, TypeUser, TypeSpace, TypeTool, TypeEvent:
		return true
	}
	return false
}

// Metadata carries the type-specific and social fields attached to a
// document. All fields are optional; zero values mean "absent". Filter and
// facet helpers access these by name and never iterate the struct blindly.
type Metadata struct {
	AuthorID       string   `json:"authorId,omitempty"`
	AuthorName     string   `json:"authorName,omitempty"`
	SpaceID        string   `json:"spaceId,omitempty"`
	SpaceName      string   `json:"spaceName,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Engagement     int      `json:"engagement,omitempty"`
	IsVerified     bool     `json:"isVerified,omitempty"`
	PostType       string   `json:"postType,omitempty"`
	UserType       string   `json:"userType,omitempty"`
	Location       string   `json:"location,omitempty"`
	HasAttachments bool     `json:"hasAttachments,omitempty"`
	MemberCount    int      `json:"memberCount,omitempty"`
	EventStart     string   `json:"eventStart,omitempty"`
	ToolCategory   string   `json:"toolCategory,omitempty"`
}

// Document is the unit of indexing and retrieval. ID is unique across the
// whole index regardless of Type; Title and Content are the only fields
// that feed tokenization.
type Document struct {
	ID        string    `json:"id"`
	Type      DocType   `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Metadata  Metadata  `json:"metadata"`
}
