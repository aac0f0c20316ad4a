package cad

import (
	"context"
	"errors"
	"fmt"
	"sync"

	ole "github.com/go-ole/go-ole"
	"github.com/sirupsen/logrus"

	"acad-mcp/internal/domain"
)

// DefaultProgID is the ActiveX class of AutoCAD. BricsCAD
// ("BricscadApp.AcadApplication") and ZWCAD ("ZWCAD.Application") expose the
// same object model.
const DefaultProgID = "AutoCAD.Application"

// AutomationConfig selects and controls the automation server.
type AutomationConfig struct {
	ProgID            string
	CreateIfNotExists bool
	Visible           bool
}

// modelSpace is the live object graph of one connection. All methods run on
// the apartment thread.
type modelSpace interface {
	addLine(start, end domain.Point) error
	addPolyline(vertices []domain.Point) error
	addCircle(center domain.Point, radius float64) error
	addEllipse(center, majorAxis domain.Point, ratio float64) error
	addArc(center domain.Point, radius, startAngle, endAngle float64) error
	info() (application, version, document string)
	release()
}

type dialFunc func(cfg AutomationConfig) (modelSpace, error)

// Application is a Session backed by a running CAD application. The connection
// is established on the first drawing call and dropped after any failed call,
// so the next call connects again (launching the application if configured).
type Application struct {
	cfg  AutomationConfig
	apt  *apartment
	dial dialFunc
	log  *logrus.Entry

	// apartment thread only
	ms modelSpace

	mu     sync.Mutex
	status Status
}

// Open starts the COM apartment. It does not contact the application yet.
func Open(cfg AutomationConfig, log *logrus.Entry) (*Application, error) {
	return newApplication(cfg, log, initCOM, ole.CoUninitialize, dialCOM)
}

func newApplication(cfg AutomationConfig, log *logrus.Entry, init func() error, uninit func(), dial dialFunc) (*Application, error) {
	if cfg.ProgID == "" {
		cfg.ProgID = DefaultProgID
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	apt, err := startApartment(init, uninit)
	if err != nil {
		return nil, err
	}
	return &Application{
		cfg:    cfg,
		apt:    apt,
		dial:   dial,
		log:    log,
		status: Status{Backend: "autocad", ProgID: cfg.ProgID},
	}, nil
}

// S_FALSE: COM was already initialized on this thread.
const sFalse = 0x00000001

func initCOM() error {
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if errors.As(err, &oleErr) && oleErr.Code() == sFalse {
			return nil
		}
		return fmt.Errorf("initialize COM: %w", err)
	}
	return nil
}

func (a *Application) AddLine(ctx context.Context, start, end domain.Point) error {
	return a.call(ctx, "AddLine", func(ms modelSpace) error {
		return ms.addLine(start, end)
	})
}

func (a *Application) AddPolyline(ctx context.Context, vertices []domain.Point) error {
	return a.call(ctx, "AddPolyline", func(ms modelSpace) error {
		return ms.addPolyline(vertices)
	})
}

func (a *Application) AddCircle(ctx context.Context, center domain.Point, radius float64) error {
	return a.call(ctx, "AddCircle", func(ms modelSpace) error {
		return ms.addCircle(center, radius)
	})
}

func (a *Application) AddEllipse(ctx context.Context, center, majorAxis domain.Point, ratio float64) error {
	return a.call(ctx, "AddEllipse", func(ms modelSpace) error {
		return ms.addEllipse(center, majorAxis, ratio)
	})
}

func (a *Application) AddArc(ctx context.Context, center domain.Point, radius, startAngle, endAngle float64) error {
	return a.call(ctx, "AddArc", func(ms modelSpace) error {
		return ms.addArc(center, radius, startAngle, endAngle)
	})
}

func (a *Application) call(ctx context.Context, method string, fn func(modelSpace) error) error {
	return a.apt.do(ctx, func() error {
		ms, err := a.connect()
		if err != nil {
			return err
		}
		if err := fn(ms); err != nil {
			err = fmt.Errorf("%s: %w", method, err)
			a.disconnect(err)
			return err
		}
		return nil
	})
}

func (a *Application) connect() (modelSpace, error) {
	if a.ms != nil {
		return a.ms, nil
	}
	ms, err := a.dial(a.cfg)
	if err != nil {
		a.setStatus(Status{LastError: err.Error()})
		return nil, err
	}
	a.ms = ms

	app, version, doc := ms.info()
	a.log.WithFields(logrus.Fields{
		"progId":      a.cfg.ProgID,
		"application": app,
		"version":     version,
		"document":    doc,
	}).Info("connected to cad application")
	a.setStatus(Status{Connected: true, Application: app, Version: version, Document: doc})
	return ms, nil
}

func (a *Application) disconnect(cause error) {
	if a.ms == nil {
		return
	}
	a.ms.release()
	a.ms = nil
	a.log.WithError(cause).Warn("automation call failed, connection dropped")
	a.setStatus(Status{LastError: cause.Error()})
}

func (a *Application) setStatus(s Status) {
	s.Backend = "autocad"
	s.ProgID = a.cfg.ProgID
	a.mu.Lock()
	a.status = s
	a.mu.Unlock()
}

func (a *Application) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Close releases the automation objects and stops the apartment thread.
// The CAD application itself keeps running.
func (a *Application) Close() error {
	err := a.apt.do(context.Background(), func() error {
		if a.ms != nil {
			a.ms.release()
			a.ms = nil
		}
		return nil
	})
	a.apt.close()
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}
