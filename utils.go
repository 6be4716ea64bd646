package rpq

import (
	"fmt"
	"regexp"
)

// PrintJobs renders a job set as "index: r p q" lines.
func PrintJobs(jobs JobSet) string {
	res := ""
	for _, j := range jobs {
		res += fmt.Sprintf("%d: %d %d %d\n", j.Index, j.R, j.P, j.Q)
	}
	return res
}

var (
	numbersRe  = regexp.MustCompile(`\s*([0-9]+),\s+([0-9]+)(,)?`)
	bracketsRe = regexp.MustCompile(`\[(([0-9]+,)+[0-9]+)\s+\](,?)(\s+)`)
)

// SanitizeJsonArrayLineBreaks puts integer arrays of an indented json on a
// single line.
func SanitizeJsonArrayLineBreaks(json string) string {
	res := json
	for numbersRe.MatchString(res) {
		res = numbersRe.ReplaceAllString(res, "$1,$2$3")
	}
	for bracketsRe.MatchString(res) {
		res = bracketsRe.ReplaceAllString(res, "[$1]$3$4")
	}
	return res
}
