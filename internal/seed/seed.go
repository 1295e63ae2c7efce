// Package seed provides the demonstration campus dataset used when the
// service starts without a populated catalog, so search works out of the
// box in local development and demos.
package seed

import (
	"time"

	"github.com/campuslabs/discovery/internal/document"
	"github.com/campuslabs/discovery/internal/search"
	"github.com/campuslabs/discovery/pkg/logger"
)

// Load indexes the demonstration dataset into the engine and returns the
// number of documents added.
func Load(engine *search.Engine) int {
	docs := Documents(time.Now().UTC())
	for _, doc := range docs {
		engine.IndexDocument(doc)
	}
	logger.WithComponent("seed").Info("demonstration dataset loaded", "documents", len(docs))
	return len(docs)
}

// Documents returns the demonstration corpus with timestamps relative to
// now, so recency boosts and time facets behave sensibly in demos.
func Documents(now time.Time) []document.Document {
	return []document.Document{
		{
			ID:        "post-cs201-study",
			Type:      document.TypePost,
			Title:     "Data Structures study group forming",
			Content:   "Study group for CS 201 meeting twice a week in the library. We cover linked lists, trees, and graph algorithms before each midterm. All years welcome!",
			CreatedAt: now.Add(-36 * time.Hour),
			UpdatedAt: now.Add(-36 * time.Hour),
			Metadata: document.Metadata{
				AuthorID:   "u-maya",
				AuthorName: "Maya Lin",
				SpaceID:    "s-cs",
				SpaceName:  "Computer Science",
				Tags:       []string{"study", "cs201", "algorithms"},
				Engagement: 42,
				PostType:   "discussion",
			},
		},
		{
			ID:        "post-free-pizza",
			Type:      document.TypePost,
			Title:     "Free pizza at the club fair",
			Content:   "The student activities board is hosting the spring club fair on the main quad. Free pizza while it lasts. Come find your people!",
			CreatedAt: now.Add(-3 * time.Hour),
			UpdatedAt: now.Add(-3 * time.Hour),
			Metadata: document.Metadata{
				AuthorID:       "u-sab",
				AuthorName:     "Student Activities Board",
				Tags:           []string{"events", "food", "clubs"},
				Engagement:     128,
				PostType:       "announcement",
				HasAttachments: true,
			},
		},
		{
			ID:        "post-office-hours",
			Type:      document.TypePost,
			Title:     "Updated office hours schedule",
			Content:   "Professor Okafor posted the new office hours schedule for the semester. Tuesdays and Thursdays, third floor of the science building.",
			CreatedAt: now.Add(-8 * 24 * time.Hour),
			UpdatedAt: now.Add(-8 * 24 * time.Hour),
			Metadata: document.Metadata{
				AuthorID:   "u-okafor",
				AuthorName: "Prof. Okafor",
				SpaceID:    "s-physics",
				SpaceName:  "Physics",
				Tags:       []string{"office-hours", "physics"},
				Engagement: 15,
				PostType:   "announcement",
			},
		},
		{
			ID:        "user-maya",
			Type:      document.TypeUser,
			Title:     "Maya Lin",
			Content:   "Junior studying computer science. Organizing study groups and tutoring intro programming. Ask me about the robotics club.",
			CreatedAt: now.Add(-400 * 24 * time.Hour),
			UpdatedAt: now.Add(-2 * 24 * time.Hour),
			Metadata: document.Metadata{
				UserType:   "student",
				Location:   "North Campus",
				Tags:       []string{"tutoring", "robotics"},
				Engagement: 310,
				IsVerified: true,
			},
		},
		{
			ID:        "user-okafor",
			Type:      document.TypeUser,
			Title:     "Prof. Adaeze Okafor",
			Content:   "Associate professor of physics. Office hours posted each semester. Research in condensed matter and undergraduate mentoring.",
			CreatedAt: now.Add(-900 * 24 * time.Hour),
			UpdatedAt: now.Add(-8 * 24 * time.Hour),
			Metadata: document.Metadata{
				UserType:   "faculty",
				Location:   "Science Building",
				Engagement: 95,
				IsVerified: true,
			},
		},
		{
			ID:        "space-cs",
			Type:      document.TypeSpace,
			Title:     "Computer Science",
			Content:   "The hub for everything CS on campus: course discussions, study groups, hackathon teams, internship advice, and project showcases.",
			CreatedAt: now.Add(-700 * 24 * time.Hour),
			UpdatedAt: now.Add(-24 * time.Hour),
			Metadata: document.Metadata{
				Tags:        []string{"academics", "technology"},
				Engagement:  2400,
				MemberCount: 1830,
				IsVerified:  true,
			},
		},
		{
			ID:        "space-intramural",
			Type:      document.TypeSpace,
			Title:     "Intramural Sports",
			Content:   "Sign-ups, schedules, and results for intramural soccer, basketball, volleyball, and ultimate. No experience needed.",
			CreatedAt: now.Add(-500 * 24 * time.Hour),
			UpdatedAt: now.Add(-5 * 24 * time.Hour),
			Metadata: document.Metadata{
				Tags:        []string{"sports", "recreation"},
				Engagement:  1650,
				MemberCount: 2210,
			},
		},
		{
			ID:        "tool-room-finder",
			Type:      document.TypeTool,
			Title:     "Empty Room Finder",
			Content:   "Find open study rooms across campus in real time. Filter by building, capacity, and whiteboard availability.",
			CreatedAt: now.Add(-120 * 24 * time.Hour),
			UpdatedAt: now.Add(-30 * 24 * time.Hour),
			Metadata: document.Metadata{
				AuthorID:     "u-maya",
				AuthorName:   "Maya Lin",
				Tags:         []string{"study", "productivity"},
				Engagement:   540,
				ToolCategory: "utilities",
			},
		},
		{
			ID:        "tool-meal-points",
			Type:      document.TypeTool,
			Title:     "Meal Point Tracker",
			Content:   "Track your dining plan balance and see how many meal points you are burning per week compared to the semester budget.",
			CreatedAt: now.Add(-60 * 24 * time.Hour),
			UpdatedAt: now.Add(-10 * 24 * time.Hour),
			Metadata: document.Metadata{
				Tags:         []string{"dining", "budgeting"},
				Engagement:   380,
				ToolCategory: "finance",
			},
		},
		{
			ID:        "event-career-fair",
			Type:      document.TypeEvent,
			Title:     "Spring Career Fair",
			Content:   "Over eighty employers recruiting for internships and full-time roles. Bring printed resumes. Business casual recommended.",
			CreatedAt: now.Add(-14 * 24 * time.Hour),
			UpdatedAt: now.Add(-24 * time.Hour),
			Metadata: document.Metadata{
				Location:   "Recreation Center",
				Tags:       []string{"careers", "networking"},
				Engagement: 720,
				EventStart: now.Add(5 * 24 * time.Hour).Format(time.RFC3339),
			},
		},
		{
			ID:        "event-movie-night",
			Type:      document.TypeEvent,
			Title:     "Outdoor movie night on the quad",
			Content:   "Free screening under the stars, blankets provided. Vote for the film in the Spaces poll. Rain location is the student center.",
			CreatedAt: now.Add(-20 * time.Hour),
			UpdatedAt: now.Add(-20 * time.Hour),
			Metadata: document.Metadata{
				SpaceID:    "s-sab",
				SpaceName:  "Student Activities",
				Location:   "Main Quad",
				Tags:       []string{"events", "film"},
				Engagement: 210,
				EventStart: now.Add(2 * 24 * time.Hour).Format(time.RFC3339),
			},
		},
	}
}
