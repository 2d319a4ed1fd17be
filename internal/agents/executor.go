package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/runner"
	adksession "google.golang.org/adk/session"
	"google.golang.org/genai"

	"blogsmith/internal/adapters/redis"
	"blogsmith/internal/agents/state"
	"blogsmith/internal/metrics"
	"blogsmith/internal/tools/shared"
	"blogsmith/pkg/errors"
	"blogsmith/pkg/logger"
)

// ArticleSource says which pipeline stage produced the returned article.
type ArticleSource string

const (
	SourceImproved ArticleSource = "improved"
	SourceDraft    ArticleSource = "draft"
	SourceResponse ArticleSource = "response"
	SourceNone     ArticleSource = "none"
)

// RunResult is the outcome of one workflow run.
type RunResult struct {
	RunID   string                `json:"run_id"`
	Topic   string                `json:"topic"`
	Article string                `json:"article"`
	Source  ArticleSource         `json:"source"`

	// Degraded is set when the article came from an earlier stage because a
	// later stage did not succeed.
	Degraded  bool                `json:"degraded"`
	Stages    []state.StageResult `json:"stages"`
	FromCache bool                `json:"from_cache"`

	InputTokens  int           `json:"input_tokens"`
	OutputTokens int           `json:"output_tokens"`
	Duration     time.Duration `json:"duration"`
}

// ProgressEvent is a single progress update emitted during a run.
type ProgressEvent struct {
	RunID     string    `json:"run_id"`
	Agent     string    `json:"agent,omitempty"`
	Kind      string    `json:"kind"` // started|agent_output|tool_call|handoff|completed|error
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ProgressFunc receives progress events. It is called from the run goroutine
// and must not block for long.
type ProgressFunc func(ProgressEvent)

// Task is the handle for an in-flight workflow run. Execute returns
// immediately; callers block on Wait when they need the result.
type Task struct {
	RunID string

	done   chan struct{}
	result *RunResult
	err    error
}

// Done is closed when the run finishes.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the run finishes or the context is cancelled.
func (t *Task) Wait(ctx context.Context) (*RunResult, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return nil, errors.Wrap(errors.ErrTimeout, ctx.Err().Error())
	}
}

// Result returns the outcome without blocking. It fails with
// ErrRunNotFinished while the run is still going.
func (t *Task) Result() (*RunResult, error) {
	select {
	case <-t.done:
		return t.result, t.err
	default:
		return nil, errors.ErrRunNotFinished
	}
}

// WorkflowRunner executes the article pipeline through the ADK runner.
type WorkflowRunner struct {
	pipeline   *Pipeline
	runs       *state.Registry
	cache      *redis.ArticleCache
	runTimeout time.Duration

	runner *runner.Runner
	log    *logger.Logger
}

// RunnerDeps gathers what the workflow runner needs.
type RunnerDeps struct {
	Pipeline       *Pipeline
	Runs           *state.Registry
	SessionService adksession.Service

	// Cache is optional; nil disables article caching.
	Cache      *redis.ArticleCache
	RunTimeout time.Duration
}

// NewWorkflowRunner creates a workflow runner for the assembled pipeline.
func NewWorkflowRunner(deps RunnerDeps) (*WorkflowRunner, error) {
	if deps.Pipeline == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "pipeline is required")
	}
	if deps.Runs == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "run registry is required")
	}

	sessionService := deps.SessionService
	if sessionService == nil {
		sessionService = adksession.InMemoryService()
	}

	runnerInstance, err := runner.New(runner.Config{
		AppName:        "blogsmith",
		Agent:          deps.Pipeline.Root,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create ADK runner")
	}

	timeout := deps.RunTimeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}

	return &WorkflowRunner{
		pipeline:   deps.Pipeline,
		runs:       deps.Runs,
		cache:      deps.Cache,
		runTimeout: timeout,
		runner:     runnerInstance,
		log:        logger.Get().With("component", "workflow_runner"),
	}, nil
}

// Execute starts a workflow run for the topic and returns a task handle. The
// run itself happens on a separate goroutine; progress may be nil.
func (w *WorkflowRunner) Execute(ctx context.Context, topic string, progress ProgressFunc) (*Task, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "topic is required")
	}

	task := &Task{
		RunID: uuid.New().String(),
		done:  make(chan struct{}),
	}

	go func() {
		defer close(task.done)
		task.result, task.err = w.run(ctx, task.RunID, topic, progress)
	}()

	return task, nil
}

func (w *WorkflowRunner) run(ctx context.Context, runID, topic string, progress ProgressFunc) (*RunResult, error) {
	start := time.Now()
	emit := func(agentName, kind, message string) {
		if progress == nil {
			return
		}
		progress(ProgressEvent{
			RunID:     runID,
			Agent:     agentName,
			Kind:      kind,
			Message:   message,
			Timestamp: time.Now(),
		})
	}

	emit("", "started", fmt.Sprintf("Generating article for topic: %s", topic))

	if w.cache != nil {
		if cached := w.cache.Get(ctx, topic); cached != nil {
			w.log.Infof("Article cache hit: run=%s topic=%q", runID, topic)
			metrics.RunsTotal.WithLabelValues("cached").Inc()
			emit("", "completed", "Served from cache.")
			return &RunResult{
				RunID:     runID,
				Topic:     topic,
				Article:   cached.Article,
				Source:    SourceImproved,
				Stages:    state.NewStageTracker().Report(),
				FromCache: true,
				Duration:  time.Since(start),
			}, nil
		}
	}

	run := w.runs.Begin(runID, topic)
	defer w.runs.End(runID)

	runCtx, cancel := context.WithTimeout(ctx, w.runTimeout)
	defer cancel()
	runCtx = shared.WithInvocationMetadata(runCtx, shared.InvocationMetadata{
		RunID: runID,
		Topic: topic,
	})

	userContent := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: fmt.Sprintf("Write a detailed, markdown-formatted blog post about %s", topic)},
		},
	}

	runConfig := agent.RunConfig{
		StreamingMode:             agent.StreamingModeSSE,
		SaveInputBlobsAsArtifacts: false,
	}

	w.log.Infof("Starting workflow run: run=%s topic=%q", runID, topic)

	inputTokens := 0
	outputTokens := 0
	var finalResponse *adksession.Event

	for event, err := range w.runner.Run(runCtx, "web", runID, userContent, runConfig) {
		if err != nil {
			metrics.RunsTotal.WithLabelValues("error").Inc()
			metrics.RunDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
			emit("", "error", err.Error())
			return nil, errors.Wrap(err, "workflow run failed")
		}

		if event == nil || event.LLMResponse.Partial {
			continue
		}

		if event.UsageMetadata != nil {
			inputTokens += int(event.UsageMetadata.PromptTokenCount)
			outputTokens += int(event.UsageMetadata.CandidatesTokenCount)
		}

		if event.Actions.TransferToAgent != "" {
			emit(event.Author, "handoff", "Hand-off to "+event.Actions.TransferToAgent)
		}

		if event.LLMResponse.Content != nil {
			for _, part := range event.LLMResponse.Content.Parts {
				if part.Text != "" {
					emit(event.Author, "agent_output", part.Text)
				}
				if part.FunctionCall != nil {
					emit(event.Author, "tool_call", part.FunctionCall.Name)
				}
			}
		}

		if event.TurnComplete && event.IsFinalResponse() {
			finalResponse = event
		}
	}

	result := w.buildResult(runID, topic, run, finalResponse)
	result.InputTokens = inputTokens
	result.OutputTokens = outputTokens
	result.Duration = time.Since(start)

	metrics.TokensUsed.WithLabelValues("input").Add(float64(inputTokens))
	metrics.TokensUsed.WithLabelValues("output").Add(float64(outputTokens))
	for _, stage := range result.Stages {
		metrics.StageOutcomes.WithLabelValues(string(stage.Stage), string(stage.Status)).Inc()
	}

	status := "success"
	if result.Degraded {
		status = "degraded"
	}
	metrics.RunsTotal.WithLabelValues(status).Inc()
	metrics.RunDuration.WithLabelValues(status).Observe(result.Duration.Seconds())

	if w.cache != nil && !result.Degraded && result.Source == SourceImproved {
		w.cache.Put(ctx, topic, result.Article)
	}

	w.log.Infof("Workflow run complete: run=%s source=%s degraded=%v duration=%v tokens=%d/%d",
		runID, result.Source, result.Degraded, result.Duration, inputTokens, outputTokens)
	emit("", "completed", string(result.Source))

	return result, nil
}

// buildResult picks the article text by stage priority: the SEO-improved
// version first, then the raw draft, then the final model response. When all
// three are empty the result carries a diagnostic instead of an article.
func (w *WorkflowRunner) buildResult(runID, topic string, run *state.Run, finalResponse *adksession.Event) *RunResult {
	result := &RunResult{
		RunID:  runID,
		Topic:  topic,
		Stages: run.Stages.Report(),
	}

	improved := state.GetImprovedPostArticle(run.State)
	draft := state.GetPostArticleContent(run.State)
	response := finalResponseText(finalResponse)

	switch {
	case improved != "":
		result.Article = improved
		result.Source = SourceImproved
	case draft != "":
		result.Article = draft
		result.Source = SourceDraft
	case response != "":
		result.Article = response
		result.Source = SourceResponse
	default:
		result.Article = fmt.Sprintf(
			"No article text found.\n\nDebug info:\nState: %v\nSearch: %s",
			run.State.Snapshot(), state.GetSearchResults(run.State),
		)
		result.Source = SourceNone
	}

	result.Degraded = result.Source != SourceImproved || run.Stages.Degraded()
	return result
}

func finalResponseText(event *adksession.Event) string {
	if event == nil || event.LLMResponse.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range event.LLMResponse.Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
