package inbound

import "github.com/tejasg2002/Lisa-podcast-Generator/domain"

type ScriptSegmenterPort interface {
	Segment(script string, hostName string, guestName string) []domain.Segment
}
