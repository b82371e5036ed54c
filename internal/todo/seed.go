package todo

import (
	"context"
	"fmt"
	"time"

	"github.com/mwantia/taskfilter/pkg/db/models"
)

// Creator persists new todos.
type Creator interface {
	CreateTodos(ctx context.Context, todos []models.Todo) error
}

var (
	demoTasks = []string{
		"Fix login redirect bug",
		"Write onboarding docs",
		"Add CSV export",
		"Investigate slow dashboard",
		"Refactor billing module",
		"Document API rate limits",
		"Crash when uploading avatars",
		"Support dark mode",
	}
	demoSources   = []string{"newsletter", "google", "twitter", ""}
	demoMediums   = []string{"email", "cpc", "social"}
	demoCampaigns = []string{"spring_launch", "", "retargeting"}
)

// Demo builds n deterministic demo todos for organization, created over the
// days before now.
func Demo(organization string, n int, now time.Time) []models.Todo {
	todos := make([]models.Todo, 0, n)
	for i := 0; i < n; i++ {
		status := Statuses[i%len(Statuses)].Value
		created := now.UTC().Add(-time.Duration(i*7) * time.Hour)

		todo := models.Todo{
			OrganizationID: organization,
			Text:           fmt.Sprintf("%s #%d", demoTasks[i%len(demoTasks)], i+1),
			Completed:      status == "done",
			Status:         status,
			Priority:       Priorities[i%len(Priorities)].Value,
			Label:          Labels[i%len(Labels)].Value,
			CreatedAt:      created,
			UpdatedAt:      created.Add(time.Duration(i%5) * time.Hour),
		}

		// every third todo arrives without tracking
		if i%3 != 2 {
			utms := map[string]string{
				"source": demoSources[i%len(demoSources)],
				"medium": demoMediums[i%len(demoMediums)],
			}
			if campaign := demoCampaigns[i%len(demoCampaigns)]; campaign != "" {
				utms["campaign"] = campaign
			}
			todo.Tracking = models.Tracking{UTMs: utms}
		}

		todos = append(todos, todo)
	}
	return todos
}

// Seed writes n demo todos for organization.
func Seed(ctx context.Context, store Creator, organization string, n int, now time.Time) error {
	if organization == "" {
		return fmt.Errorf("organization is required")
	}
	if err := store.CreateTodos(ctx, Demo(organization, n, now)); err != nil {
		return fmt.Errorf("failed to seed todos: %w", err)
	}
	return nil
}
