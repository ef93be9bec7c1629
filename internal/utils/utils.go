package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var invalidFileChars = regexp.MustCompile(`[\/\?<>\\:\*\|"\s]+`)

func StringNotEmptyCoalesce(args ...string) string {
	for _, elem := range args {
		if len(elem) > 0 {
			return elem
		}
	}

	return ""
}

func SanitizeFileName(name string) string {
	// Запрещённые в Windows символы и пробелы заменяются на _
	return invalidFileChars.ReplaceAllString(name, "_")
}

// FormatCount сокращает счётчик: 1500 -> 1.5K, 2500000 -> 2.5M.
// Как и parseInt, берёт целое в начале строки ("1500 views" -> 1.5K).
// Если числа нет, строка возвращается без изменений.
func FormatCount(raw string) string {
	s := strings.TrimSpace(raw)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	digitsFrom := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digitsFrom {
		return raw
	}

	number, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return raw
	}

	switch {
	case number >= 1_000_000:
		return fmt.Sprintf("%.1fM", number/1_000_000)
	case number >= 1_000:
		return fmt.Sprintf("%.1fK", number/1_000)
	default:
		return strconv.FormatFloat(number, 'f', 0, 64)
	}
}

func FormatSecondsToMMSS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
