package layout

import "strings"

// Wrap 将原始文本拆分为显示行，使用按字形前进宽度测量的贪心换行。
//
// 显式换行是硬段落分隔符，空段落保留为空行以维持纵向间距。单个单词
// 本身超过 maxWidth 时独占一行且不截断（不做连字符拆分）。
// maxWidth <= 0 时不按宽度折行。输入末尾的一个换行符被忽略。
func Wrap(text string, maxWidth float64, m Measurer, mode WrapMode) []string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}
	}

	paragraphs := strings.Split(text, "\n")
	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		if mode == WrapNone || maxWidth <= 0 || m == nil {
			lines = append(lines, strings.Join(words, " "))
			continue
		}
		lines = append(lines, wrapWords(words, maxWidth, m)...)
	}
	return lines
}

// wrapWords packs words left to right until the next one would overflow.
func wrapWords(words []string, limit float64, m Measurer) []string {
	var lines []string
	var builder strings.Builder

	emit := func() {
		if builder.Len() == 0 {
			return
		}
		lines = append(lines, builder.String())
		builder.Reset()
	}

	for _, word := range words {
		if builder.Len() == 0 {
			builder.WriteString(word)
			continue
		}
		candidate := builder.String() + " " + word
		if m.Measure(candidate) <= limit {
			builder.WriteString(" ")
			builder.WriteString(word)
			continue
		}
		emit()
		builder.WriteString(word)
	}
	emit()
	return lines
}
