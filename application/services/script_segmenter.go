package services

import (
	"regexp"
	"strings"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/inbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

const MaxFallbackSegments = 10

var sentenceTerminators = regexp.MustCompile(`[.!?]+`)

type speakerPattern struct {
	speaker domain.Speaker
	re      *regexp.Regexp
}

type scriptSegmenter struct {
	logger outbound.LoggerPort
}

func NewScriptSegmenter(logger outbound.LoggerPort) inbound.ScriptSegmenterPort {
	return &scriptSegmenter{
		logger: logger,
	}
}

// Segment splits a dialogue script into ordered speaker turns. It never fails: a script with
// no recognisable speaker tags falls back to alternating sentences.
func (s *scriptSegmenter) Segment(script string, hostName string, guestName string) []domain.Segment {
	segments := make([]domain.Segment, 0)
	if strings.TrimSpace(script) == "" {
		return segments
	}

	roles := speakerRoles(hostName, guestName)
	patterns := buildSpeakerPatterns(roles)
	splitter := buildTurnSplitter(roles)

	for _, rawLine := range strings.Split(script, "\n") {
		for _, line := range splitInlineTurns(strings.TrimSpace(rawLine), splitter) {
			if line == "" {
				continue
			}
			speaker, text, ok := matchSpeaker(line, patterns)
			if !ok {
				s.logger.DebugWithFields("Dropping unattributed script line", map[string]interface{}{
					"line": line,
				})
				continue
			}
			if text == "" {
				continue
			}
			segments = append(segments, domain.NewSegment(len(segments), speaker, text))
		}
	}

	if len(segments) > 0 {
		return segments
	}

	s.logger.InfoWithFields("No speaker tags found, falling back to sentence split", map[string]interface{}{
		"host":  hostName,
		"guest": guestName,
	})
	return fallbackSegments(script)
}

type speakerRole struct {
	speaker domain.Speaker
	name    string
}

func speakerRoles(hostName string, guestName string) []speakerRole {
	roles := make([]speakerRole, 0, 2)
	if name := strings.TrimSpace(hostName); name != "" {
		roles = append(roles, speakerRole{speaker: domain.HostSpeaker, name: regexp.QuoteMeta(name)})
	}
	if name := strings.TrimSpace(guestName); name != "" {
		roles = append(roles, speakerRole{speaker: domain.GuestSpeaker, name: regexp.QuoteMeta(name)})
	}
	return roles
}

// buildSpeakerPatterns returns the patterns in priority order, host before guest inside each
// pattern family.
func buildSpeakerPatterns(roles []speakerRole) []speakerPattern {
	templates := []string{
		`(?i)^\*{0,2}%s\*{0,2}\s*:\s*(.*)$`,
		`(?i)^%s\s+-\s*(.*)$`,
		`(?i)^\*{0,2}%s[^:]*:(.*)$`,
		`(?i)^[\s#>*_\[\(]*%s[\s*_\]\)]*[:\-–—]\s*(.*)$`,
	}
	patterns := make([]speakerPattern, 0, len(templates)*len(roles))
	for _, tmpl := range templates {
		for _, role := range roles {
			patterns = append(patterns, speakerPattern{
				speaker: role.speaker,
				re:      regexp.MustCompile(strings.Replace(tmpl, "%s", role.name, 1)),
			})
		}
	}
	return patterns
}

func buildTurnSplitter(roles []speakerRole) *regexp.Regexp {
	if len(roles) == 0 {
		return nil
	}
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.name)
	}
	return regexp.MustCompile(`(?i)[.!?]["')\]]?\s+(\*{0,2}(?:` + strings.Join(names, "|") + `)\*{0,2}\s*:)`)
}

// splitInlineTurns breaks "Alice: Hi! Bob: Hello!" into one line per speaker turn.
func splitInlineTurns(line string, splitter *regexp.Regexp) []string {
	if splitter == nil || line == "" {
		return []string{line}
	}
	matches := splitter.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return []string{line}
	}
	parts := make([]string, 0, len(matches)+1)
	start := 0
	for _, m := range matches {
		cut := m[2]
		parts = append(parts, strings.TrimSpace(line[start:cut]))
		start = cut
	}
	return append(parts, strings.TrimSpace(line[start:]))
}

func matchSpeaker(line string, patterns []speakerPattern) (domain.Speaker, string, bool) {
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(line); m != nil {
			return p.speaker, strings.TrimSpace(m[1]), true
		}
	}
	return "", "", false
}

func fallbackSegments(script string) []domain.Segment {
	segments := make([]domain.Segment, 0, MaxFallbackSegments)
	for _, sentence := range sentenceTerminators.Split(script, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		speaker := domain.HostSpeaker
		if len(segments)%2 == 1 {
			speaker = domain.GuestSpeaker
		}
		segments = append(segments, domain.NewSegment(len(segments), speaker, sentence))
		if len(segments) == MaxFallbackSegments {
			break
		}
	}
	return segments
}
