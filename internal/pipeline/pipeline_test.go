package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/config"
	"git.home.luguber.info/inful/mublog/internal/paths"
)

type trace struct{ sb strings.Builder }

func (t *trace) add(s string) { t.sb.WriteString(s) }
func (t *trace) String() string {
	return t.sb.String()
}

type recordingStage struct {
	id    StageID
	tag   string
	trace *trace
	fail  Phase
}

func (s *recordingStage) ID() StageID { return s.id }

func (s *recordingStage) step(phase Phase, mark string) error {
	if s.fail == phase {
		return fmt.Errorf("%s broke", s.tag)
	}
	s.trace.add(s.tag + mark)
	return nil
}

func (s *recordingStage) Initialize(*blog.BuildContext) error { return s.step(PhaseInitialize, "i") }
func (s *recordingStage) Process(*blog.BuildContext) error    { return s.step(PhaseProcess, "p") }
func (s *recordingStage) Finalize(*blog.BuildContext) error   { return s.step(PhaseFinalize, "f") }

type recordingFeature struct {
	name  string
	subs  []hookKey
	trace *trace
	err   error
}

func (f *recordingFeature) Name() string { return f.name }

func (f *recordingFeature) Subscribe(r *FeatureRegistry) {
	for _, k := range f.subs {
		r.Register(k.stage, k.point, f)
	}
}

func (f *recordingFeature) Run(_ *blog.BuildContext, stage StageID, point Lifecycle) error {
	if f.err != nil {
		return f.err
	}
	f.trace.add(fmt.Sprintf("[%s@%s/%s]", f.name, stage, point))
	return nil
}

func newTestContext() *blog.BuildContext {
	return blog.NewBuildContext(config.Example(), paths.New("/blog"), nil)
}

func TestRun_StageOrdering(t *testing.T) {
	tr := &trace{}
	p := New(newTestContext())
	for i := 1; i <= 3; i++ {
		p.AddStage(&recordingStage{id: StageID(fmt.Sprintf("s%d", i)), tag: fmt.Sprint(i), trace: tr})
	}

	require.NoError(t, p.Run())
	assert.Equal(t, "1i1p1f2i2p2f3i3p3f", tr.String())
	assert.Equal(t, []StageID{"s1", "s2", "s3"}, p.Stages())
}

func TestRun_DuplicateStageKindsRunTwice(t *testing.T) {
	tr := &trace{}
	p := New(newTestContext()).
		AddStage(&recordingStage{id: "same", tag: "a", trace: tr}).
		AddStage(&recordingStage{id: "same", tag: "b", trace: tr})

	require.NoError(t, p.Run())
	assert.Equal(t, "aiapafbibpbf", tr.String())
}

func TestRun_HooksWrapProcess(t *testing.T) {
	both := []hookKey{{"s2", PreProcess}, {"s3", PostProcess}}
	tests := []struct {
		name     string
		stages   int
		features []*recordingFeature
		want     string
	}{
		{
			name:   "one feature on two stages",
			stages: 2,
			features: []*recordingFeature{
				{name: "x", subs: []hookKey{{"s2", PreProcess}, {"s1", PostProcess}}},
			},
			want: "1i1p[x@s1/post_process]1f2i[x@s2/pre_process]2p2f",
		},
		{
			name:   "two features on three stages",
			stages: 3,
			features: []*recordingFeature{
				{name: "A", subs: both},
				{name: "B", subs: both},
			},
			want: "1i1p1f" +
				"2i[A@s2/pre_process][B@s2/pre_process]2p2f" +
				"3i3p[A@s3/post_process][B@s3/post_process]3f",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &trace{}
			p := New(newTestContext())
			for i := 1; i <= tt.stages; i++ {
				p.AddStage(&recordingStage{id: StageID(fmt.Sprintf("s%d", i)), tag: fmt.Sprint(i), trace: tr})
			}
			for _, f := range tt.features {
				f.trace = tr
				p.AddFeature(f)
			}

			require.NoError(t, p.Run())
			assert.Equal(t, tt.want, tr.String())
		})
	}
}

func TestRun_FeatureOrderWithinBucket(t *testing.T) {
	tr := &trace{}
	sub := []hookKey{{"s", PostProcess}}
	p := New(newTestContext()).
		AddStage(&recordingStage{id: "s", tag: "", trace: tr}).
		AddFeature(&recordingFeature{name: "b", trace: tr, subs: sub}).
		AddFeature(&recordingFeature{name: "a", trace: tr, subs: sub}).
		AddFeature(&recordingFeature{name: "c", trace: tr, subs: sub})

	require.NoError(t, p.Run())
	assert.Equal(t, "ip[b@s/post_process][a@s/post_process][c@s/post_process]f", tr.String())
}

func TestRun_FailFast(t *testing.T) {
	tests := []struct {
		name  string
		phase Phase
		want  string
	}{
		{"initialize", PhaseInitialize, "1i1p1f"},
		{"process", PhaseProcess, "1i1p1f2i"},
		{"finalize", PhaseFinalize, "1i1p1f2i2p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &trace{}
			p := New(newTestContext()).
				AddStage(&recordingStage{id: "s1", tag: "1", trace: tr}).
				AddStage(&recordingStage{id: "s2", tag: "2", trace: tr, fail: tt.phase}).
				AddStage(&recordingStage{id: "s3", tag: "3", trace: tr})

			err := p.Run()
			require.Error(t, err)
			assert.Equal(t, tt.want, tr.String())

			var se *StageError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, StageID("s2"), se.Stage)
			assert.Equal(t, tt.phase, se.Phase)
			assert.Equal(t, fmt.Sprintf("stage s2 failed during %s: 2 broke", tt.phase), err.Error())
		})
	}
}

func TestRun_HookFailureStopsBuild(t *testing.T) {
	tr := &trace{}
	boom := errors.New("boom")
	p := New(newTestContext()).
		AddStage(&recordingStage{id: "s1", tag: "1", trace: tr}).
		AddStage(&recordingStage{id: "s2", tag: "2", trace: tr}).
		AddFeature(&recordingFeature{name: "bad", trace: tr, err: boom, subs: []hookKey{{"s1", PostProcess}}}).
		AddFeature(&recordingFeature{name: "never", trace: tr, subs: []hookKey{{"s1", PostProcess}}})

	err := p.Run()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "1i1p", tr.String())
	assert.Equal(t, "stage s1 failed during post_process: feature bad failed: boom", err.Error())

	var fe *FeatureError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "bad", fe.Feature)
	assert.Equal(t, PostProcess, fe.Lifecycle)
}

func TestRunHooks_EmptyBucket(t *testing.T) {
	r := NewFeatureRegistry()
	require.NoError(t, r.RunHooks(newTestContext(), "nothing", PreProcess))
	assert.Empty(t, r.Hooks("nothing", PreProcess))
	assert.Zero(t, r.Len())
}

func TestRegister_SameFeatureTwice(t *testing.T) {
	tr := &trace{}
	r := NewFeatureRegistry()
	f := &recordingFeature{name: "x", trace: tr}
	r.Register("s", PreProcess, f)
	r.Register("s", PreProcess, f)

	require.NoError(t, r.RunHooks(newTestContext(), "s", PreProcess))
	assert.Equal(t, "[x@s/pre_process][x@s/pre_process]", tr.String())
	assert.Len(t, r.Hooks("s", PreProcess), 2)

	hooks := r.Hooks("s", PreProcess)
	hooks[0] = nil
	assert.NotNil(t, r.Hooks("s", PreProcess)[0])
}

type recordingObserver struct {
	events []string
	err    error
}

func (o *recordingObserver) OnStageStart(s StageID) { o.events = append(o.events, "start:"+string(s)) }
func (o *recordingObserver) OnStageComplete(s StageID, _ time.Duration, err error) {
	o.events = append(o.events, fmt.Sprintf("done:%s:%s", s, ResultOf(err)))
}
func (o *recordingObserver) OnBuildComplete(_ time.Duration, err error) {
	o.events = append(o.events, "build")
	o.err = err
}

func TestRun_Observer(t *testing.T) {
	obs := &recordingObserver{}
	tr := &trace{}
	p := New(newTestContext(), WithObserver(MultiObserver{NoopObserver{}, obs})).
		AddStage(&recordingStage{id: "a", tag: "a", trace: tr}).
		AddStage(&recordingStage{id: "b", tag: "b", trace: tr, fail: PhaseProcess}).
		AddStage(&recordingStage{id: "c", tag: "c", trace: tr})

	err := p.Run()
	require.Error(t, err)
	assert.Equal(t, []string{"start:a", "done:a:success", "start:b", "done:b:failed", "build"}, obs.events)
	assert.Equal(t, err, obs.err)
}

func TestContextAccessor(t *testing.T) {
	ctx := newTestContext()
	p := New(ctx, WithLogger(nil))
	assert.Same(t, ctx, p.Context())
	assert.NotNil(t, p.Features())
}
