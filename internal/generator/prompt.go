package generator

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

const promptTemplate = `あなたはプロフェッショナルなニュース番組のキャスターです。
ユーザーのパーソナルデータを分析し、%[1]sの活動レポートを作成してください。

【番組情報】
番組名: %[2]s
放送日: %[3]s
放送時間の目安: 約%[4]d分

【キャスター設定】
1. %[5]s（メインキャスター）: %[6]s
2. %[7]s（コメンテーター）: %[8]s

【分析方針】
%[9]s、データに基づいた客観的な分析を行ってください。

【活動データ】
総活動数: %[10]d件
%[11]s

【注目ポイント】
%[12]s

【台本の構成】
必ず以下の3つのセクションで構成してください：

[オープニング]
- 番組開始の挨拶
- 「%[2]s」の紹介（ユーザーの日々の活動を分析するパーソナルニュース番組）
- 本日のハイライト（最も重要な3つの活動を簡潔に紹介）

[メイン]
- トップニュース: 最も重要な活動の詳細分析
- カテゴリー別分析: 仕事、学習、健康などのバランス
- 成果評価: 達成したこととその意義
- 継続性分析: 継続的な取り組みやパターン

[エンディング]
- 本日の総括（データに基づいた客観的な評価）
- 明日の予測・提言
- 番組終了の挨拶

【重要な注意事項】
- ニュース番組としてのプロフェッショナルなトーンを保つ
- データや事実に基づいた客観的な分析を行う
- 具体的な数値や統計を交えた報告をする
- キャスター間での役割分担を明確に（%[5]sが主導、%[7]sが補足・深掘り）
- リスナーにとって有益な洞察を提供する
`

const structuredTail = `- 各セクションのtypeは「opening」「main」「ending」のいずれか
- 各発言のspeakerは「%s」または「%s」

JSON形式で台本を作成してください：`

const freeformTail = `- 各セクションは [オープニング] [メイン] [エンディング] の見出しで始める
- 各発言は「%s: 発言内容」または「%s: 発言内容」の形式で1行に1つ書く
- 見出しと発言以外の説明文は書かない

台本：`

var styleDirectives = map[model.Style]string{
	model.StyleAnalytical:    "分析的に詳細に",
	model.StyleComprehensive: "包括的に幅広く",
}

func (g *implGenerator) buildPrompt(memo *model.ParsedMemo, opts Options) string {
	host, commentator := g.cfg.Personas.Host, g.cfg.Personas.Commentator

	period := "本日"
	if memo.DateRange != nil {
		period = fmt.Sprintf("%sから%sまで",
			memo.DateRange.Start.Format("2006/1/2"), memo.DateRange.End.Format("2006/1/2"))
	}

	directive, ok := styleDirectives[opts.Style]
	if !ok {
		directive = styleDirectives[model.StyleAnalytical]
	}

	var b strings.Builder
	fmt.Fprintf(&b, promptTemplate,
		period,
		g.cfg.ShowName,
		memo.Date.Format("2006/1/2"),
		opts.DurationMinutes,
		host.Name, host.Character,
		commentator.Name, commentator.Character,
		directive,
		len(memo.Activities),
		bullets(activityDescriptions(memo.Activities)),
		bullets(memo.Highlights),
	)

	switch g.cfg.Mode {
	case ModeFreeform:
		fmt.Fprintf(&b, freeformTail, host.Name, commentator.Name)
	default:
		fmt.Fprintf(&b, structuredTail, host.Name, commentator.Name)
	}

	return b.String()
}

func activityDescriptions(activities []model.Activity) []string {
	out := make([]string, len(activities))
	for i, a := range activities {
		out[i] = a.Description
	}
	return out
}

func bullets(items []string) string {
	if len(items) == 0 {
		return "- （なし）"
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func scriptTitle(memo *model.ParsedMemo, showName string) string {
	d := memo.Date
	return fmt.Sprintf("%d年%d月%d日の%s", d.Year(), int(d.Month()), d.Day(), showName)
}
