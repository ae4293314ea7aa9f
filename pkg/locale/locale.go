// Package locale holds the message catalogs used for findings, reports,
// CLI notices, and editor status messages.
package locale

import (
	"golang.org/x/text/language"
)

// Catalog is the set of user-facing strings for one language.
// Fields ending in "f" are fmt format strings.
type Catalog struct {
	// Tag is the language this catalog is written in.
	Tag language.Tag

	// LanguageName is the English name of the language, used in model prompts.
	LanguageName string

	// Rule messages.
	LinePrefixf          string
	HeadingSpacef        string
	TrailingWhitespace   string
	TodoFoundf           string
	RulesSourceLabel     string
	AdvisorySourceLabelf string

	// Report layout.
	ReportTitlef           string
	SectionRules           string
	SectionTerms           string
	SectionInconsistencies string
	SectionSuggestions     string
	SectionErrors          string
	NoIssues               string

	// Advisory.
	TermLabel          string
	InconsistencyLabel string
	SuggestionLabel    string
	AdvisoryErrorf     string
	MalformedResponse  string
	MissingResult      string
	AdvisoryHint       string

	// CLI notices.
	Checkingf        string
	FoundFilesf      string
	NoMarkdownFilesf string
	ReadErrorf       string
	WaitingForModel  string
	AdvisorySkipped  string
	PullingModelf    string
	ModelPulledf     string
	PullWarningf     string
	PreviewWrittenf  string
	Watchingf        string

	// Editor session.
	StatusReady           string
	StatusLoadedf         string
	StatusErrorf          string
	StatusSavedf          string
	StatusSaveErrorf      string
	StatusModifiedOnDisk  string
	StatusRulesRunning    string
	StatusRulesDonef      string
	StatusRulesClean      string
	StatusAdvisoryRunning string
	StatusAdvisoryDonef   string
	StatusAdvisoryErrorf  string
	StatusAdvisoryBusy    string
	NoIssuesItem          string
	WindowTitle           string
	WindowTitlef          string
	PreviewPlaceholder    string
}

// English is the default catalog.
//
//nolint:gochecknoglobals // Read-only message table.
var English = Catalog{
	Tag:          language.English,
	LanguageName: "English",

	LinePrefixf:          "Line %d: ",
	HeadingSpacef:        "Missing space after heading marker (char code: %s) -> %s",
	TrailingWhitespace:   "Trailing whitespace at end of line",
	TodoFoundf:           "Found TODO/FIXME -> %s",
	RulesSourceLabel:     "Rules",
	AdvisorySourceLabelf: "AI (%s)",

	ReportTitlef:           " 🔍 Analysis Report (%s) ",
	SectionRules:           "Basic Formatting Issues",
	SectionTerms:           "Terms / Proper Nouns",
	SectionInconsistencies: "Inconsistencies",
	SectionSuggestions:     "AI Suggestions",
	SectionErrors:          "AI Check Errors",
	NoIssues:               "(no issues found)",

	TermLabel:          "[Term]",
	InconsistencyLabel: "[Inconsistency]",
	SuggestionLabel:    "[Suggestion]",
	AdvisoryErrorf:     "AI check error: %s",
	MalformedResponse:  "JSON parse error: the model returned an invalid response",
	MissingResult:      "the model returned no result",
	AdvisoryHint:       "(check that Ollama is running and the model has been pulled)",

	Checkingf:        "Checking: %s",
	FoundFilesf:      "Found %[2]d Markdown file(s) in %[1]s",
	NoMarkdownFilesf: "No Markdown files found in %s",
	ReadErrorf:       "File read error: %v",
	WaitingForModel:  "Waiting for the model to respond...",
	AdvisorySkipped:  "  -> AI check skipped. Enable it with --llm.",
	PullingModelf:    "Pulling model: %s ...",
	ModelPulledf:     "[OK] Model pulled: %s",
	PullWarningf:     "Warning: %s",
	PreviewWrittenf:  "Preview written: %s",
	Watchingf:        "Watching %s (Ctrl+C to stop)",

	StatusReady:           "Ready",
	StatusLoadedf:         "Loaded: %s",
	StatusErrorf:          "Error: %v",
	StatusSavedf:          "Saved: %s",
	StatusSaveErrorf:      "Save error: %v",
	StatusModifiedOnDisk:  "The file was changed on disk since it was opened; overwriting",
	StatusRulesRunning:    "Running rule check...",
	StatusRulesDonef:      "Rule check finished: %d issue(s)",
	StatusRulesClean:      "Rule check finished: no issues",
	StatusAdvisoryRunning: "Running AI check (this may take a while)...",
	StatusAdvisoryDonef:   "AI check finished: %d finding(s)",
	StatusAdvisoryErrorf:  "AI check error: %v",
	StatusAdvisoryBusy:    "An AI check is already running",
	NoIssuesItem:          "✓ No issues found",
	WindowTitle:           "MDCheck - Markdown Checker with Preview",
	WindowTitlef:          "MDCheck - %s",
	PreviewPlaceholder:    "The preview will appear here",
}

// Japanese mirrors the wording of the original desktop tool.
//
//nolint:gochecknoglobals // Read-only message table.
var Japanese = Catalog{
	Tag:          language.Japanese,
	LanguageName: "Japanese",

	LinePrefixf:          "行 %d: ",
	HeadingSpacef:        "見出しの後に空白がありません (文字コード: %s) -> %s",
	TrailingWhitespace:   "行末に余計な空白があります",
	TodoFoundf:           "TODO/FIXMEが見つかりました -> %s",
	RulesSourceLabel:     "ルール",
	AdvisorySourceLabelf: "AI (%s)",

	ReportTitlef:           " 🔍 解析レポート (%s) ",
	SectionRules:           "基本的なフォーマットの問題",
	SectionTerms:           "用語 / 固有名詞",
	SectionInconsistencies: "表記揺れ",
	SectionSuggestions:     "AIによる提案",
	SectionErrors:          "AIチェックエラー",
	NoIssues:               "(問題は見つかりませんでした)",

	TermLabel:          "[用語]",
	InconsistencyLabel: "[表記揺れ]",
	SuggestionLabel:    "[提案]",
	AdvisoryErrorf:     "AIチェックエラー: %s",
	MalformedResponse:  "JSON解析エラー: LLMの応答が不正でした",
	MissingResult:      "LLMから結果が返されませんでした",
	AdvisoryHint:       "(Ollamaが起動しているか、モデルがpullされているか確認してください)",

	Checkingf:        "チェック中: %s",
	FoundFilesf:      "%s 内に %d 個のMarkdownファイルが見つかりました",
	NoMarkdownFilesf: "%s にMarkdownファイルが見つかりませんでした",
	ReadErrorf:       "ファイル読み込みエラー: %v",
	WaitingForModel:  "LLMの応答を待機中...",
	AdvisorySkipped:  "  -> AIチェックはスキップされました。 --llm で有効化できます。",
	PullingModelf:    "Pulling model: %s ...",
	ModelPulledf:     "[OK] モデルをpullしました: %s",
	PullWarningf:     "Warning: %s",
	PreviewWrittenf:  "プレビューを書き出しました: %s",
	Watchingf:        "%s を監視中 (Ctrl+C で終了)",

	StatusReady:           "準備完了",
	StatusLoadedf:         "読み込み完了: %s",
	StatusErrorf:          "エラー: %v",
	StatusSavedf:          "保存完了: %s",
	StatusSaveErrorf:      "保存エラー: %v",
	StatusModifiedOnDisk:  "ファイルは開いた後に外部で変更されています。上書きします",
	StatusRulesRunning:    "ルールチェック実行中...",
	StatusRulesDonef:      "ルールチェック完了: %d件の問題",
	StatusRulesClean:      "ルールチェック完了: 問題なし",
	StatusAdvisoryRunning: "AIチェック実行中（時間がかかる場合があります）...",
	StatusAdvisoryDonef:   "AIチェック完了: %d件の指摘",
	StatusAdvisoryErrorf:  "AIチェックエラー: %v",
	StatusAdvisoryBusy:    "AIチェックは実行中です",
	NoIssuesItem:          "✓ 問題は見つかりませんでした",
	WindowTitle:           "MDCheck - Markdown Checker with Preview",
	WindowTitlef:          "MDCheck - %s",
	PreviewPlaceholder:    "プレビューがここに表示されます",
}

//nolint:gochecknoglobals // Read-only lookup table.
var (
	supported = []*Catalog{&English, &Japanese}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Japanese})
)

// Lookup returns the catalog that best matches the given BCP 47 language
// string ("ja", "ja-JP", "en-US", ...). Unknown or empty input yields English.
func Lookup(lang string) *Catalog {
	if lang == "" {
		return &English
	}
	_, index := language.MatchStrings(matcher, lang)
	if index < 0 || index >= len(supported) {
		return &English
	}
	return supported[index]
}

// Supported reports whether lang matches one of the shipped catalogs
// with at least low confidence.
func Supported(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	_, _, confidence := matcher.Match(tag)
	return confidence != language.No
}

// Code returns the short language code of the catalog ("en", "ja").
func (c *Catalog) Code() string {
	base, _ := c.Tag.Base()
	return base.String()
}
