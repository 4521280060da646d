// Package format 把摘要里常见的 LaTeX 数学写法转成 Slack 能直接显示的
// 纯文本。转换是尽力而为的：没见过的写法原样保留，绝不报错。
package format

import (
	"regexp"
	"strings"
)

var superscripts = map[rune]rune{
	'0': '⁰',
	'1': '¹',
	'2': '²',
	'3': '³',
	'4': '⁴',
	'5': '⁵',
	'6': '⁶',
	'7': '⁷',
	'8': '⁸',
	'9': '⁹',
}

var (
	caretRe  = regexp.MustCompile(`(\w)\^(\d)`)
	mathbfRe = regexp.MustCompile(`\\mathbf\{(\w+)\}\^(\d+)`)
	bracedRe = regexp.MustCompile(`\$\{(\w+)\}\^(\d+)\$`)
	dollarRe = regexp.MustCompile(`\$(\w+)\^(\d+)\$`)
	inlineRe = regexp.MustCompile(`\$(.*?)\$`)
)

// ForSlack 按固定顺序应用转换规则。对已经转换过的文本再跑一遍结果不变。
func ForSlack(text string) string {
	if text == "" {
		return ""
	}

	// H^3 → H³
	text = caretRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := caretRe.FindStringSubmatch(m)
		return sub[1] + toSuperscript(sub[2])
	})

	// \mathbf{H}^3 → H³
	text = mathbfRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := mathbfRe.FindStringSubmatch(m)
		return sub[1] + toSuperscript(sub[2])
	})

	// ${H}^3$ → H³
	text = bracedRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := bracedRe.FindStringSubmatch(m)
		return sub[1] + toSuperscript(sub[2])
	})

	// $H^3$ → H³
	text = dollarRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := dollarRe.FindStringSubmatch(m)
		return sub[1] + toSuperscript(sub[2])
	})

	// 残りの $...$ はデリミタだけ剥がす
	text = inlineRe.ReplaceAllString(text, "$1")

	return text
}

func toSuperscript(digits string) string {
	var b strings.Builder
	for _, d := range digits {
		if s, ok := superscripts[d]; ok {
			b.WriteRune(s)
		} else {
			b.WriteRune(d)
		}
	}
	return b.String()
}
