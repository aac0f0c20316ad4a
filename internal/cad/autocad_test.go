package cad

import (
	"context"
	"errors"
	"testing"

	"acad-mcp/internal/domain"
)

type fakeModelSpace struct {
	calls    []string
	failNext error
	released bool
}

func (f *fakeModelSpace) do(name string) error {
	f.calls = append(f.calls, name)
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	return nil
}

func (f *fakeModelSpace) addLine(_, _ domain.Point) error { return f.do("line") }
func (f *fakeModelSpace) addPolyline(_ []domain.Point) error { return f.do("polyline") }
func (f *fakeModelSpace) addCircle(_ domain.Point, _ float64) error { return f.do("circle") }
func (f *fakeModelSpace) addEllipse(_, _ domain.Point, _ float64) error {
	return f.do("ellipse")
}
func (f *fakeModelSpace) addArc(_ domain.Point, _, _, _ float64) error { return f.do("arc") }
func (f *fakeModelSpace) info() (string, string, string) {
	return "AutoCAD", "24.1s (LMS Tech)", "Drawing1.dwg"
}
func (f *fakeModelSpace) release() { f.released = true }

type fakeDialer struct {
	dials int
	err   error
	last  *fakeModelSpace
	cfg   AutomationConfig
}

func (d *fakeDialer) dial(cfg AutomationConfig) (modelSpace, error) {
	d.dials++
	d.cfg = cfg
	if d.err != nil {
		return nil, d.err
	}
	d.last = &fakeModelSpace{}
	return d.last, nil
}

func newTestApplication(t *testing.T, d *fakeDialer) *Application {
	t.Helper()
	app, err := newApplication(AutomationConfig{}, nil, func() error { return nil }, func() {}, d.dial)
	if err != nil {
		t.Fatalf("newApplication: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestApplication_ConnectsLazilyAndReuses(t *testing.T) {
	d := &fakeDialer{}
	app := newTestApplication(t, d)

	if d.dials != 0 {
		t.Fatalf("expected no dial before first call, got %d", d.dials)
	}
	if app.Status().Connected {
		t.Error("expected disconnected status before first call")
	}

	ctx := context.Background()
	if err := app.AddLine(ctx, domain.Point{}, domain.Point{X: 1}); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := app.AddCircle(ctx, domain.Point{}, 5); err != nil {
		t.Fatalf("AddCircle: %v", err)
	}
	if d.dials != 1 {
		t.Errorf("expected 1 dial, got %d", d.dials)
	}
	if got := d.last.calls; len(got) != 2 || got[0] != "line" || got[1] != "circle" {
		t.Errorf("calls = %v", got)
	}
	if d.cfg.ProgID != DefaultProgID {
		t.Errorf("ProgID = %q, want default %q", d.cfg.ProgID, DefaultProgID)
	}

	st := app.Status()
	if !st.Connected || st.Document != "Drawing1.dwg" || st.Backend != "autocad" {
		t.Errorf("unexpected status: %+v", st)
	}
}

func TestApplication_FailureDropsConnection(t *testing.T) {
	d := &fakeDialer{}
	app := newTestApplication(t, d)
	ctx := context.Background()

	if err := app.AddArc(ctx, domain.Point{}, 1, 0, 1); err != nil {
		t.Fatalf("AddArc: %v", err)
	}
	first := d.last
	boom := errors.New("invalid input")
	first.failNext = boom

	err := app.AddEllipse(ctx, domain.Point{}, domain.Point{X: 2}, 0)
	if !errors.Is(err, boom) {
		t.Fatalf("AddEllipse error = %v, want wrapped %v", err, boom)
	}
	if got := err.Error(); got != "AddEllipse: invalid input" {
		t.Errorf("error text = %q", got)
	}
	if !first.released {
		t.Error("expected failed connection to be released")
	}
	if st := app.Status(); st.Connected || st.LastError == "" {
		t.Errorf("expected disconnected status with error, got %+v", st)
	}

	if err := app.AddPolyline(ctx, []domain.Point{{}, {X: 1}}); err != nil {
		t.Fatalf("AddPolyline after failure: %v", err)
	}
	if d.dials != 2 {
		t.Errorf("expected reconnect, dials = %d", d.dials)
	}
}

func TestApplication_DialErrorPropagates(t *testing.T) {
	unavailable := errors.New("AutoCAD.Application is not running")
	d := &fakeDialer{err: unavailable}
	app := newTestApplication(t, d)

	err := app.AddLine(context.Background(), domain.Point{}, domain.Point{})
	if !errors.Is(err, unavailable) {
		t.Fatalf("AddLine error = %v, want %v", err, unavailable)
	}
	if st := app.Status(); st.LastError != unavailable.Error() {
		t.Errorf("LastError = %q", st.LastError)
	}
}

func TestApplication_CloseReleases(t *testing.T) {
	d := &fakeDialer{}
	app, err := newApplication(AutomationConfig{ProgID: "ZWCAD.Application"}, nil, func() error { return nil }, func() {}, d.dial)
	if err != nil {
		t.Fatalf("newApplication: %v", err)
	}
	if err := app.AddLine(context.Background(), domain.Point{}, domain.Point{}); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !d.last.released {
		t.Error("expected Close to release the connection")
	}
	if err := app.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := app.AddLine(context.Background(), domain.Point{}, domain.Point{}); !errors.Is(err, ErrClosed) {
		t.Errorf("AddLine after Close = %v, want ErrClosed", err)
	}
}
