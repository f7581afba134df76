package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

var activityVerbs = []string{
	"した", "やった", "行った", "完了", "達成", "終了", "開始", "成功", "させた", "頑張った",
}

var categoryKeywords = []struct {
	category model.Category
	keywords []string
}{
	{model.CategoryWork, []string{"仕事", "会議", "プロジェクト", "タスク", "プレゼン", "業務", "作業"}},
	{model.CategoryLearning, []string{"勉強", "学習", "読書", "本を読", "学んだ", "研究", "講座"}},
	{model.CategoryHealth, []string{"運動", "ジム", "ランニング", "ウォーキング", "散歩", "筋トレ", "ヨガ"}},
	{model.CategoryPersonal, []string{"友達", "家族", "映画", "趣味", "料理", "掃除", "買い物"}},
}

var achievementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+時間.*?頑張った)`),
	regexp.MustCompile(`(\d+時間.*?達成)`),
	regexp.MustCompile(`(\d+分.*?頑張)`),
	regexp.MustCompile(`(\d+分.*?達成)`),
	regexp.MustCompile(`(.*?成功させた)`),
	regexp.MustCompile(`(.*?を完了)`),
	regexp.MustCompile(`(.*?を達成)`),
}

var positiveKeywords = []string{
	"完了", "達成", "成功", "解決", "頑張", "良い", "できた", "嬉しい",
	"楽しい", "充実", "進歩", "改善", "学べた", "理解", "クリア", "完成",
}

const minActivityRunes = 5

// Categorize returns the first category whose keyword set matches text.
func Categorize(text string) model.Category {
	for _, set := range categoryKeywords {
		if containsAny(text, set.keywords) {
			return set.category
		}
	}
	return model.CategoryOther
}

// ExtractAchievement returns the capture of the first matching template.
func ExtractAchievement(text string) string {
	for _, re := range achievementPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// ExtractActivities walks content sentence by sentence and keeps every
// sentence that reads like something the author did.
func ExtractActivities(content string) []model.Activity {
	var activities []model.Activity
	for _, line := range strings.Split(content, "\n") {
		for _, sentence := range splitSentences(line) {
			if !isActivity(sentence) {
				continue
			}
			activities = append(activities, model.Activity{
				Category:    Categorize(sentence),
				Description: sentence,
				Achievement: ExtractAchievement(sentence),
			})
		}
	}
	return activities
}

// ExtractHighlights collects the clauses around positive keywords,
// deduplicated in first-seen order.
func ExtractHighlights(content string) []string {
	var highlights []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(content, "\n") {
		for _, kw := range positiveKeywords {
			if !strings.Contains(line, kw) {
				continue
			}
			for _, clause := range splitClauses(line) {
				clause = strings.TrimSpace(clause)
				if clause == "" || !strings.Contains(clause, kw) || seen[clause] {
					continue
				}
				seen[clause] = true
				highlights = append(highlights, clause)
			}
		}
	}
	return highlights
}

func isActivity(sentence string) bool {
	s := strings.TrimSpace(sentence)
	if utf8.RuneCountInString(s) <= minActivityRunes {
		return false
	}
	if bareDateLine.MatchString(s) {
		return false
	}
	return containsAny(s, activityVerbs)
}

const sentenceTerminators = "。！!？?"

// splitSentences cuts line at sentence terminators. The terminators are
// dropped.
func splitSentences(line string) []string {
	var out []string
	var b strings.Builder
	for _, r := range line {
		if strings.ContainsRune(sentenceTerminators, r) {
			if s := strings.TrimSpace(b.String()); s != "" {
				out = append(out, s)
			}
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}

func splitClauses(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == '。' || r == '、'
	})
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
