package agent

import (
	"context"
	"fmt"
	"strings"

	"studymate/internal/docstore"
	"studymate/internal/llm"
	"studymate/internal/retrieval"
	"studymate/internal/tts"
	"studymate/internal/websearch"
)

// PodcastStyles are the accepted script styles. Unknown styles fall back to
// conversational rather than failing.
var PodcastStyles = []string{"conversational", "lecture", "summary", "storytelling"}

const (
	podcastDocMaxResults   = 10
	podcastWebSourceCap    = 5
	podcastDefaultStyle    = "conversational"
	podcastDefaultVoice    = "nova"
	podcastDefaultFormat   = "mp3"
	podcastDefaultDuration = 5

	// Approximate speaking rate used to size scripts.
	wordsPerMinute = 150
)

var styleInstructions = map[string]string{
	"conversational": `Create a friendly, engaging podcast script as if explaining to a friend.
Use natural language, occasional questions, and relatable examples.`,
	"lecture": `Create an educational lecture-style script with clear structure:
introduction, main points, examples, and conclusion. Formal but accessible.`,
	"summary": `Create a concise summary script hitting the key points.
Brief, clear, and well-organized. Perfect for quick review.`,
	"storytelling": `Create an engaging narrative that tells a story.
Use vivid descriptions, build interest, and make it memorable.`,
}

func validStyle(style string) bool {
	_, ok := styleInstructions[style]
	return ok
}

// PodcastAgent turns document content or a topic into a spoken-word script
// and, when a synthesizer is configured, an audio file. Audio synthesis is
// best effort: the script is the product, the file a bonus.
type PodcastAgent struct {
	base
	synth tts.Synthesizer
}

// NewPodcastAgent builds a podcast agent. synth may be nil, which disables
// audio generation.
func NewPodcastAgent(client llm.Client, adapter *retrieval.Adapter, synth tts.Synthesizer) *PodcastAgent {
	return &PodcastAgent{base: newBase(podcastConfig, client, adapter), synth: synth}
}

func (a *PodcastAgent) Process(ctx context.Context, query string, ec *ExecutionContext) (*Response, error) {
	opts := normalizePodcastOptions(ec)

	content, srcs, usedDocuments := a.gatherContent(ctx, query, opts)

	prompt := a.buildScriptPrompt(query, content, opts)
	gen, err := a.generate(ctx, prompt, ec)
	if err != nil {
		return nil, err
	}
	script := gen.Text

	// A missing audio file is recorded as nil so callers can tell
	// "synthesis skipped or failed" apart from an empty path.
	var audioFile any
	if path := a.synthesize(ctx, script, opts); path != "" {
		audioFile = path
	}

	meta := map[string]any{
		"podcast_query":   query,
		"style":           opts.Style,
		"voice":           opts.Voice,
		"format":          opts.Format,
		"audio_file":      audioFile,
		"duration_target": opts.DurationTarget,
		"used_documents":  usedDocuments,
		"document_id":     opts.DocumentID,
		"chapter_id":      opts.ChapterID,
	}
	return a.respond(script, gen, srcs, meta), nil
}

// normalizePodcastOptions applies defaults and replaces invalid values
// instead of rejecting them.
func normalizePodcastOptions(ec *ExecutionContext) PodcastOptions {
	var opts PodcastOptions
	if ec != nil && ec.Podcast != nil {
		opts = *ec.Podcast
	}
	if !validStyle(opts.Style) {
		opts.Style = podcastDefaultStyle
	}
	if !tts.ValidVoice(opts.Voice) {
		opts.Voice = podcastDefaultVoice
	}
	if !tts.ValidFormat(opts.Format) {
		opts.Format = podcastDefaultFormat
	}
	if opts.DurationTarget <= 0 {
		opts.DurationTarget = podcastDefaultDuration
	}
	return opts
}

func (a *PodcastAgent) gatherContent(ctx context.Context, query string, opts PodcastOptions) (string, []Source, bool) {
	var (
		parts         []string
		srcs          sourceList
		usedDocuments bool
	)

	var passages []docstore.Passage
	if opts.DocumentID != "" {
		passages = a.retrieval.SearchDocumentsIn(ctx, query, podcastDocMaxResults, 0, []string{opts.DocumentID})
	} else {
		passages = a.retrieval.SearchDocuments(ctx, query, podcastDocMaxResults, 0)
	}
	if len(passages) > 0 {
		usedDocuments = true
		var sb strings.Builder
		sb.WriteString("=== Content from Uploaded Documents ===\n")
		for _, p := range passages {
			fmt.Fprintf(&sb, "\n[%s]", p.DocumentTitle)
			if p.PageNumber > 0 {
				fmt.Fprintf(&sb, " - Page %d", p.PageNumber)
			}
			fmt.Fprintf(&sb, "\n%s\n", p.Content)
		}
		parts = append(parts, sb.String())
		srcs.addDocuments(passages, podcastDocMaxResults)
	}

	// Web content supplements an empty library but never blocks the script.
	if len(parts) == 0 {
		result, err := a.retrieval.SearchWeb(ctx, query, websearch.Options{})
		if err != nil {
			a.log.Warn("web search failed for podcast topic %q: %v", query, err)
		} else {
			parts = append(parts, "\n=== Additional Context from Web ===\n"+result.Text)
			srcs.addWebSources(result.Sources, podcastWebSourceCap, "")
		}
	}

	return strings.Join(parts, "\n"), srcs.list(), usedDocuments
}

func (a *PodcastAgent) buildScriptPrompt(query, content string, opts PodcastOptions) string {
	wordTarget := opts.DurationTarget * wordsPerMinute
	return fmt.Sprintf(`Generate a podcast script about: %s

Style: %s
Target Duration: %d minutes (~%d words)

Source Content:
%s

Instructions:
%s

Format:
- Write as spoken word (not an article)
- Include natural pauses and transitions
- Make it engaging and easy to follow
- Target approximately %d words
- Add [PAUSE] markers where natural breaks occur
- Don't include speaker labels or stage directions

Create the podcast script now:`,
		query, opts.Style, opts.DurationTarget, wordTarget, content, styleInstructions[opts.Style], wordTarget)
}

// synthesize renders audio for the script. Failures degrade to no audio.
func (a *PodcastAgent) synthesize(ctx context.Context, script string, opts PodcastOptions) string {
	if a.synth == nil {
		a.log.Debug("no synthesizer configured, skipping audio generation")
		return ""
	}
	path, err := a.synth.Synthesize(ctx, script, opts.Voice, opts.Format)
	if err != nil {
		a.log.Warn("audio generation failed: %v", err)
		return ""
	}
	return path
}
