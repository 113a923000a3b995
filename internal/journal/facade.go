package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"rokufun-core/internal/domain/entity"
)

// ExtractionError means the model's structured output did not parse. Callers
// treat it as "feature unavailable this round", not as a fatal failure.
type ExtractionError struct {
	Feature string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: structured output did not parse: %v", e.Feature, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Message is one turn of the diary chat as the UI holds it.
type Message struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

func float32Ptr(v float32) *float32 { return &v }

// GenerateDailyFeedback asks for the six-field feedback on one day's log,
// written in the chosen personality's voice and grounded in past entries.
func (c *Client) GenerateDailyFeedback(ctx context.Context, log entity.DailyLog, personality entity.Personality, history []entity.DailyLog) (*entity.AIFeedback, error) {
	inputContext := logContext(log)
	historyContext := historyContext(history)

	var prompt string
	if personality == entity.PersonalityJinnai {
		prompt = fmt.Sprintf(`今日の日記を読んで、陣内としてコメントしろ。
表面的な褒め言葉はいらねえ。「お前、昨日はこんなこと書いてたのに今日はこれかよ」みたいな、過去の記録 %s との繋がりがあればそこも突っ込め。
とにかくお前らしい、ぶっきらぼうだが本質を突いた言葉を頼むぜ。

ユーザーの入力データ:
%s`, historyContext, inputContext)
	} else {
		prompt = fmt.Sprintf(`
ユーザーの日記を読み解き、その一日の固有の美しさを哲学的な言葉で伝えてください。
過去の遍歴 %s を踏まえ、ユーザーの魂がどう進化しているか深く洞察してください。

【執筆の掟】
1. **具体性の徹底:** ユーザーが書いた「具体的な言葉」を必ず引用してください。
2. **物語の結合:** 朝の意図と夜の結果を繋ぎ、一日のストーリーを完結させてください。

ユーザーの入力データ:
%s`, historyContext, inputContext)
	}

	result, err := c.call(ctx, entity.ActionGenerateContent, &entity.Payload{
		Model:             defaultModel,
		Prompt:            prompt,
		SystemInstruction: instructionFor(personality),
		GenerationConfig: &entity.GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   feedbackSchema,
			Temperature:      float32Ptr(1.1),
		},
	})
	if err != nil {
		return nil, err
	}

	var feedback entity.AIFeedback
	if err := json.Unmarshal([]byte(result), &feedback); err != nil {
		return nil, &ExtractionError{Feature: "daily feedback", Err: err}
	}
	return &feedback, nil
}

// GenerateSouvenirImage returns an artistic image description for the day.
// Returns "" without error when the evening entry is missing.
func (c *Client) GenerateSouvenirImage(ctx context.Context, log entity.DailyLog) (string, error) {
	if log.Evening == nil {
		return "", nil
	}

	prompt := fmt.Sprintf(`
A masterpiece artistic illustration capturing the essence of this feeling: "%s".
The mood is "%s".
Style: Whimsical, warm lighting, Studio Ghibli meets Monet, soft pastel colors, dreamy atmosphere, high quality digital art.
No text. A visual metaphor for a fulfilling day.
`, strings.Join(log.Evening.GoodThings, ", "), log.Evening.Insights)

	return c.call(ctx, entity.ActionGenerateContent, &entity.Payload{
		Model:  defaultModel,
		Prompt: prompt,
	})
}

// GenerateParallelStory produces the "what if" episode for the day.
func (c *Client) GenerateParallelStory(ctx context.Context, log entity.DailyLog) (*entity.ParallelStory, error) {
	if log.Evening == nil {
		return nil, nil
	}

	prompt := fmt.Sprintf(`
ユーザーの今日の日記をもとに、「もし今日、別の些細な選択をしていたら？」という並行世界（パラレルワールド）のエピソードを生成してください。

【条件】
- 些細な選択の違い（例：コーヒーではなく紅茶を頼んだ、一本早い電車に乗った、等）から生じる、意外な展開を描く。
- バタフライエフェクトのように、小さな違いが大きな結果（ファンタジーでもSF的でも可）に繋がる様子を描写する。
- 少し不気味でミステリアスな、「世にも奇妙な物語」のような雰囲気で。

日記の内容:
- 良かったこと: %s
- 気づき: %s
`, strings.Join(log.Evening.GoodThings, ", "), log.Evening.Insights)

	result, err := c.call(ctx, entity.ActionGenerateContent, &entity.Payload{
		Model:  defaultModel,
		Prompt: prompt,
		GenerationConfig: &entity.GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   parallelWorldSchema,
			Temperature:      float32Ptr(1.3),
		},
	})
	if err != nil {
		return nil, err
	}

	var story entity.ParallelStory
	if err := json.Unmarshal([]byte(result), &story); err != nil {
		return nil, &ExtractionError{Feature: "parallel story", Err: err}
	}
	return &story, nil
}

// GenerateChatReply sends the running conversation and returns the model's
// next turn. The last message is the user's new input; everything before it
// travels as history.
func (c *Client) GenerateChatReply(ctx context.Context, messages []Message, personality entity.Personality) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("chat requires at least one message")
	}

	history := make([]entity.Turn, 0, len(messages)-1)
	for _, m := range messages[:len(messages)-1] {
		// Anything that is not a model turn travels as a user turn.
		role := m.Role
		if role != "model" {
			role = "user"
		}
		history = append(history, entity.Turn{Role: role, Text: m.Text})
	}
	// The adapter strips these too; doing it here keeps the wire payload
	// valid even against older gateway deployments.
	for len(history) > 0 && history[0].Role == "model" {
		history = history[1:]
	}

	return c.call(ctx, entity.ActionChat, &entity.Payload{
		Model:             defaultModel,
		Message:           messages[len(messages)-1].Text,
		History:           history,
		SystemInstruction: chatGoalFor(personality),
	})
}

// ExtractLogFromChat distills a chat transcript into an evening diary entry.
func (c *Client) ExtractLogFromChat(ctx context.Context, messages []Message) (*entity.EveningEntry, error) {
	transcript := make([]string, 0, len(messages))
	for _, m := range messages {
		transcript = append(transcript, m.Role+": "+m.Text)
	}

	prompt := fmt.Sprintf(`
以下の会話ログから、ユーザーの「今日の日記」として記録すべき要素を抽出して構造化データにせよ。

【会話ログ】
%s

【抽出項目】
- goodThings: 良かったこと・楽しかったこと（3つ程度、配列で）
- kindness: 誰かに親切にしたこと、優しさを与えたこと
- insights: 新しい発見、教訓、感情の動き
- followUpQuestion: 会話の内容を踏まえた、明日への問いかけ
`, strings.Join(transcript, "\n"))

	result, err := c.call(ctx, entity.ActionGenerateContent, &entity.Payload{
		Model:  defaultModel,
		Prompt: prompt,
		GenerationConfig: &entity.GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   eveningEntrySchema,
		},
	})
	if err != nil {
		return nil, err
	}

	var entry entity.EveningEntry
	if err := json.Unmarshal([]byte(result), &entry); err != nil {
		return nil, &ExtractionError{Feature: "chat extraction", Err: err}
	}
	return &entry, nil
}

func logContext(log entity.DailyLog) string {
	orEmpty := func(s string) string {
		if s == "" {
			return "未入力"
		}
		return s
	}
	joinOrEmpty := func(items []string) string {
		if len(items) == 0 {
			return "未入力"
		}
		return strings.Join(items, ", ")
	}

	var morning entity.MorningEntry
	if log.Morning != nil {
		morning = *log.Morning
	}
	var evening entity.EveningEntry
	if log.Evening != nil {
		evening = *log.Evening
	}

	return fmt.Sprintf(`
【朝の記録】
- 感謝: %s
- 目標: %s
- スタンス: %s

【夜の記録】
- 良かったこと: %s
- 親切: %s
- 気づき: %s
- 問いかけ: %s
`,
		joinOrEmpty(morning.Gratitude), orEmpty(morning.TodayGoal), orEmpty(morning.Stance),
		joinOrEmpty(evening.GoodThings), orEmpty(evening.Kindness), orEmpty(evening.Insights), orEmpty(evening.FollowUpQuestion))
}

func historyContext(history []entity.DailyLog) string {
	if len(history) == 0 {
		return ""
	}
	lines := make([]string, 0, len(history))
	for _, h := range history {
		title := ""
		if h.AIFeedback != nil {
			title = h.AIFeedback.DailyTitle
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", h.Date, title))
	}
	return "\n【過去の記録の遍歴（参考資料）】\n" + strings.Join(lines, "\n") + "\n"
}
