package domain

type StageName string

const (
	VoiceSynthesisStage StageName = "voice_synthesis"
	AudioUploadStage    StageName = "audio_upload"
	VideoSynthesisStage StageName = "video_synthesis"
	MergeStage          StageName = "merge"
	FinalUploadStage    StageName = "final_upload"
)

type RunStatus string

const (
	ScriptReady   RunStatus = "script_ready"
	SegmentsReady RunStatus = "segments_ready"
	AudioReady    RunStatus = "audio_ready"
	UploadReady   RunStatus = "upload_ready"
	VideoReady    RunStatus = "video_ready"
	Merged        RunStatus = "merged"
	Uploaded      RunStatus = "uploaded"
	Cleaned       RunStatus = "cleaned"
	RunFailed     RunStatus = "failed"
)

// StageResult is the outcome of one unit of work. A stage emits exactly one per input item.
type StageResult[T any] struct {
	Index int
	Value T
	Err   error
}

// PipelineRun is the state of a single pipeline invocation. It is never shared between requests.
type PipelineRun struct {
	RequestID        string
	Kind             PodcastKind
	WorkDir          string
	Segments         []Segment
	StageOutputs     map[StageName]map[int]string
	FinalArtifactURL string
	Status           RunStatus
}

func NewPipelineRun(requestID string, kind PodcastKind, workDir string) *PipelineRun {
	return &PipelineRun{
		RequestID:    requestID,
		Kind:         kind,
		WorkDir:      workDir,
		StageOutputs: make(map[StageName]map[int]string),
		Status:       ScriptReady,
	}
}

func (r *PipelineRun) RecordStage(stage StageName, outputs []string) {
	byIndex := make(map[int]string, len(outputs))
	for i, ref := range outputs {
		byIndex[i] = ref
	}
	r.StageOutputs[stage] = byIndex
}

// Ordered returns the stage outputs in ascending segment index order. The second value is
// false when any index in 0..len(Segments)-1 is missing.
func (r *PipelineRun) Ordered(stage StageName) ([]string, bool) {
	byIndex, ok := r.StageOutputs[stage]
	if !ok {
		return nil, false
	}
	ordered := make([]string, len(r.Segments))
	for i := range r.Segments {
		ref, ok := byIndex[i]
		if !ok {
			return nil, false
		}
		ordered[i] = ref
	}
	return ordered, true
}
