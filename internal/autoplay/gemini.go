package autoplay

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/eldritch-pursuit/internal/logging"
)

//go:embed prompts/choose.txt
var choosePrompt string

//go:embed prompts/summarize.txt
var summarizePrompt string

var (
	chooseTmpl = template.Must(template.New("choose").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).Parse(choosePrompt))
	summarizeTmpl = template.Must(template.New("summarize").Parse(summarizePrompt))
)

// Number of recent messages kept verbatim before older ones are summarized.
const (
	maxRecent  = 24
	keepRecent = 8
)

// Gemini is a UI that lets a Gemini model play the game.
type Gemini struct {
	ctx    context.Context
	client *genai.Client
	model  *genai.GenerativeModel
	logger *zap.Logger

	// Mysteries is shown to the model as the win condition.
	Mysteries int

	mu      sync.Mutex
	recent  []string
	summary string
}

// NewGemini connects to Gemini. ctx bounds every request the player makes.
func NewGemini(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{
		ctx:       ctx,
		client:    client,
		model:     client.GenerativeModel(model),
		logger:    logging.OrNop(logger),
		Mysteries: 3,
	}, nil
}

func (g *Gemini) Close() {
	g.client.Close()
}

func (g *Gemini) ShowMessage(text string) {
	g.mu.Lock()
	g.recent = append(g.recent, text)
	long := len(g.recent) > maxRecent
	g.mu.Unlock()
	if long {
		if err := g.summarize(); err != nil {
			g.logger.Warn("summarize history", zap.Error(err))
		}
	}
}

func (g *Gemini) AskYesNo(prompt string) bool {
	answer := g.decide(prompt, []string{"yes", "no"}, "no")
	return strings.EqualFold(answer, "yes")
}

func (g *Gemini) ShowChoice(prompt string, options []string) string {
	fallback := ""
	if len(options) > 0 {
		fallback = options[0]
	}
	return g.decide(prompt, options, fallback)
}

// decide asks the model to pick one option. Any failure falls back.
func (g *Gemini) decide(prompt string, options []string, fallback string) string {
	g.mu.Lock()
	data := struct {
		Mysteries int
		Summary   string
		Recent    []string
		Prompt    string
		Options   []string
	}{g.Mysteries, g.summary, append([]string(nil), g.recent...), prompt, options}
	g.mu.Unlock()

	var buf bytes.Buffer
	if err := chooseTmpl.Execute(&buf, data); err != nil {
		g.logger.Error("render prompt", zap.Error(err))
		return fallback
	}
	text, err := g.generate(buf.String())
	if err != nil {
		g.logger.Warn("gemini request failed", zap.Error(err))
		return fallback
	}
	d, err := parseDecision(text)
	if err != nil {
		g.logger.Warn("unparseable decision", zap.Error(err))
		return fallback
	}
	g.logger.Info("gemini decision", zap.String("prompt", prompt), zap.String("choice", d.Choice), zap.String("reason", d.Reason))
	g.ShowMessage(fmt.Sprintf("%s -> %s", prompt, d.Choice))
	return d.Choice
}

func (g *Gemini) summarize() error {
	g.mu.Lock()
	if len(g.recent) <= keepRecent {
		g.mu.Unlock()
		return nil
	}
	cut := len(g.recent) - keepRecent
	old := g.recent[:cut]
	data := struct {
		CurrentSummary string
		NewEvents      string
	}{g.summary, strings.Join(old, "\n")}
	g.mu.Unlock()

	var buf bytes.Buffer
	if err := summarizeTmpl.Execute(&buf, data); err != nil {
		return err
	}
	text, err := g.generate(buf.String())
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.summary = strings.TrimSpace(text)
	g.recent = append([]string(nil), g.recent[cut:]...)
	return nil
}

func (g *Gemini) generate(prompt string) (string, error) {
	resp, err := g.model.GenerateContent(g.ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return string(text), nil
}

type decision struct {
	Choice string `yaml:"choice"`
	Reason string `yaml:"reason"`
}

// parseDecision reads the model's YAML reply, tolerating a code fence.
func parseDecision(text string) (decision, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```yaml")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	var d decision
	if err := yaml.Unmarshal([]byte(clean), &d); err != nil {
		return decision{}, fmt.Errorf("parse decision YAML: %w\nOutput was: %s", err, clean)
	}
	d.Choice = strings.TrimSpace(d.Choice)
	if d.Choice == "" {
		return decision{}, fmt.Errorf("empty choice in %q", clean)
	}
	return d, nil
}
