package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studymate/internal/agent"
)

var (
	runQuestions     int
	runQuestionTypes []string
	runDifficulty    string
	runDocumentID    string
	runStyle         string
	runVoice         string
	runAudioFormat   string
	runDuration      int
	runNoQuestions   bool
)

var runCmd = &cobra.Command{
	Use:   "run [agent] [query...]",
	Short: "Run a single agent on a query",
	Long: `Runs one agent standalone.

Examples:
  studymate run research "What is CRISPR?"
  studymate run quiz "mitosis" --questions 10 --difficulty advanced
  studymate run podcast "the water cycle" --style lecture --voice echo
  studymate run writer "write an email announcing the launch"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		query := strings.Join(args[1:], " ")

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.close()

		ec := buildExecutionContext()
		resp, err := a.orchestrator.RunByName(cmd.Context(), name, query, ec)
		if err != nil {
			return err
		}
		printResponse(resp)
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runQuestions, "questions", 0, "quiz: number of questions")
	runCmd.Flags().StringSliceVar(&runQuestionTypes, "types", nil, "quiz: question types (multiple_choice, true_false, short_answer)")
	runCmd.Flags().StringVar(&runDifficulty, "difficulty", "", "quiz/study guide: difficulty (beginner, intermediate, advanced)")
	runCmd.Flags().StringVar(&runDocumentID, "document", "", "restrict retrieval to one document ID")
	runCmd.Flags().StringVar(&runStyle, "style", "", "podcast: style (conversational, lecture, summary, storytelling)")
	runCmd.Flags().StringVar(&runVoice, "voice", "", "podcast: voice (alloy, echo, fable, onyx, nova, shimmer)")
	runCmd.Flags().StringVar(&runAudioFormat, "audio-format", "", "podcast: audio format (mp3, opus, aac, flac)")
	runCmd.Flags().IntVar(&runDuration, "duration", 0, "podcast: target duration in minutes")
	runCmd.Flags().BoolVar(&runNoQuestions, "no-practice-questions", false, "study guide: omit practice questions")
}

func buildExecutionContext() *agent.ExecutionContext {
	return &agent.ExecutionContext{
		Quiz: &agent.QuizOptions{
			NumQuestions:  runQuestions,
			QuestionTypes: runQuestionTypes,
			Difficulty:    runDifficulty,
			DocumentID:    runDocumentID,
		},
		StudyGuide: &agent.StudyGuideOptions{
			Difficulty:       runDifficulty,
			IncludeQuestions: !runNoQuestions,
		},
		Podcast: &agent.PodcastOptions{
			DocumentID:     runDocumentID,
			Style:          runStyle,
			Voice:          runVoice,
			Format:         runAudioFormat,
			DurationTarget: runDuration,
		},
	}
}

func printResponse(resp *agent.Response) {
	fmt.Printf("=== %s ===\n\n%s\n", resp.AgentName, resp.Content)

	if resp.ConfidenceScore != nil {
		fmt.Printf("\nConfidence: %.0f%%\n", *resp.ConfidenceScore)
	}
	if len(resp.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, s := range resp.Sources {
			line := fmt.Sprintf("  [%d] %s", s.ID, s.Title)
			if s.URL != "" {
				line += " - " + s.URL
			}
			if s.Page > 0 {
				line += fmt.Sprintf(" (page %d)", s.Page)
			}
			fmt.Println(line)
		}
	}
	if audio, ok := resp.Metadata["audio_file"].(string); ok && audio != "" {
		fmt.Printf("\nAudio: %s\n", audio)
	}
	fmt.Printf("\nTokens: %d  Cost: $%.6f\n", resp.TokensUsed, resp.CostUSD)
}
