package application_test

import (
	"context"
	"iter"

	"github.com/ericfisherdev/gitscripts/internal/domain/model"
)

// --- Mock implementations ---

// pageStep is one scripted answer of the fake pager.
type pageStep struct {
	page model.RepositoryPage
	err  error
}

// mockPager replays scripted pages and counts how many were requested.
type mockPager struct {
	steps    []pageStep
	fetched  int
	username string
}

func (m *mockPager) Pages(_ context.Context, username string) iter.Seq2[model.RepositoryPage, error] {
	m.username = username
	return func(yield func(model.RepositoryPage, error) bool) {
		for _, step := range m.steps {
			m.fetched++
			if step.err != nil {
				yield(model.RepositoryPage{}, step.err)
				return
			}
			if !yield(step.page, nil) {
				return
			}
			if step.page.Next == "" {
				return
			}
		}
	}
}

type createCall struct {
	Req model.ProjectCreateRequest
}

type mockProjectCreator struct {
	calls  []createCall
	result model.ProjectCreateResult
	err    error
}

func (m *mockProjectCreator) CreateProject(_ context.Context, req model.ProjectCreateRequest) (model.ProjectCreateResult, error) {
	m.calls = append(m.calls, createCall{Req: req})
	return m.result, m.err
}
