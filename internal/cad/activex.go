package cad

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"acad-mcp/internal/domain"
)

// vbDouble is the VbVarType passed to Utility.CreateTypedArray.
const vbDouble int32 = 5

// comModelSpace holds the ActiveX objects of one connection.
type comModelSpace struct {
	app     *ole.IDispatch
	doc     *ole.IDispatch
	model   *ole.IDispatch
	utility *ole.IDispatch
}

// dialCOM attaches to a running instance of cfg.ProgID, or launches one when
// CreateIfNotExists is set, and resolves the active document's model space.
func dialCOM(cfg AutomationConfig) (modelSpace, error) {
	unknown, err := oleutil.GetActiveObject(cfg.ProgID)
	launched := false
	if err != nil {
		if !cfg.CreateIfNotExists {
			return nil, fmt.Errorf("%s is not running: %w", cfg.ProgID, err)
		}
		unknown, err = oleutil.CreateObject(cfg.ProgID)
		if err != nil {
			return nil, fmt.Errorf("launch %s: %w", cfg.ProgID, err)
		}
		launched = true
	}
	defer unknown.Release()

	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, fmt.Errorf("query IDispatch: %w", err)
	}
	m := &comModelSpace{app: app}
	if err := m.open(launched && cfg.Visible); err != nil {
		m.release()
		return nil, err
	}
	return m, nil
}

func (m *comModelSpace) open(show bool) error {
	if show {
		if _, err := oleutil.PutProperty(m.app, "Visible", true); err != nil {
			return fmt.Errorf("set Visible: %w", err)
		}
	}

	docs, err := getDispatch(m.app, "Documents")
	if err != nil {
		return err
	}
	defer docs.Release()

	count, err := oleutil.GetProperty(docs, "Count")
	if err != nil {
		return fmt.Errorf("get Count: %w", err)
	}
	n := count.Val
	count.Clear()
	if n == 0 {
		res, err := oleutil.CallMethod(docs, "Add")
		if err != nil {
			return fmt.Errorf("Documents.Add: %w", err)
		}
		res.Clear()
	}

	if m.doc, err = getDispatch(m.app, "ActiveDocument"); err != nil {
		return err
	}
	if m.model, err = getDispatch(m.doc, "ModelSpace"); err != nil {
		return err
	}
	if m.utility, err = getDispatch(m.doc, "Utility"); err != nil {
		return err
	}
	return nil
}

func getDispatch(d *ole.IDispatch, name string) (*ole.IDispatch, error) {
	v, err := oleutil.GetProperty(d, name)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	disp := v.ToIDispatch()
	if disp == nil {
		v.Clear()
		return nil, fmt.Errorf("get %s: not an object", name)
	}
	return disp, nil
}

func getString(d *ole.IDispatch, name string) string {
	if d == nil {
		return ""
	}
	v, err := oleutil.GetProperty(d, name)
	if err != nil {
		return ""
	}
	defer v.Clear()
	return v.ToString()
}

// typedArray builds a VT_ARRAY|VT_R8 variant through the host's own utility
// object, which is what AutoCAD expects for points and coordinate lists.
// The caller must Clear the result.
func (m *comModelSpace) typedArray(values ...float64) (*ole.VARIANT, error) {
	v := new(ole.VARIANT)
	ole.VariantInit(v)
	args := make([]interface{}, 0, len(values)+2)
	args = append(args, v, vbDouble)
	for _, f := range values {
		args = append(args, f)
	}
	res, err := oleutil.CallMethod(m.utility, "CreateTypedArray", args...)
	if err != nil {
		return nil, fmt.Errorf("CreateTypedArray: %w", err)
	}
	res.Clear()
	return v, nil
}

func (m *comModelSpace) point(p domain.Point) (*ole.VARIANT, error) {
	return m.typedArray(p.X, p.Y, 0)
}

// invoke calls a model space method and releases the returned entity.
func (m *comModelSpace) invoke(method string, args ...interface{}) error {
	res, err := oleutil.CallMethod(m.model, method, args...)
	if err != nil {
		return err
	}
	return res.Clear()
}

func (m *comModelSpace) addLine(start, end domain.Point) error {
	p1, err := m.point(start)
	if err != nil {
		return err
	}
	defer p1.Clear()
	p2, err := m.point(end)
	if err != nil {
		return err
	}
	defer p2.Clear()
	return m.invoke("AddLine", p1, p2)
}

func (m *comModelSpace) addPolyline(vertices []domain.Point) error {
	coords := make([]float64, 0, len(vertices)*3)
	for _, v := range vertices {
		coords = append(coords, v.X, v.Y, 0)
	}
	arr, err := m.typedArray(coords...)
	if err != nil {
		return err
	}
	defer arr.Clear()
	return m.invoke("AddPolyline", arr)
}

func (m *comModelSpace) addCircle(center domain.Point, radius float64) error {
	c, err := m.point(center)
	if err != nil {
		return err
	}
	defer c.Clear()
	return m.invoke("AddCircle", c, radius)
}

func (m *comModelSpace) addEllipse(center, majorAxis domain.Point, ratio float64) error {
	c, err := m.point(center)
	if err != nil {
		return err
	}
	defer c.Clear()
	axis, err := m.point(majorAxis)
	if err != nil {
		return err
	}
	defer axis.Clear()
	return m.invoke("AddEllipse", c, axis, ratio)
}

func (m *comModelSpace) addArc(center domain.Point, radius, startAngle, endAngle float64) error {
	c, err := m.point(center)
	if err != nil {
		return err
	}
	defer c.Clear()
	return m.invoke("AddArc", c, radius, startAngle, endAngle)
}

func (m *comModelSpace) info() (application, version, document string) {
	return getString(m.app, "Name"), getString(m.app, "Version"), getString(m.doc, "Name")
}

func (m *comModelSpace) release() {
	for _, d := range []*ole.IDispatch{m.utility, m.model, m.doc, m.app} {
		if d != nil {
			d.Release()
		}
	}
	m.utility, m.model, m.doc, m.app = nil, nil, nil, nil
}
