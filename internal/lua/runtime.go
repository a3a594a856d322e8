package lua

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

// Runtime evaluates catalog scripts in a sandboxed Lua state
type Runtime struct {
	logger *slog.Logger
	logs   []string
}

// NewRuntime creates a runtime that forwards script log() calls to logger
func NewRuntime(logger *slog.Logger) *Runtime {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runtime{
		logger: logger,
		logs:   make([]string, 0),
	}
}

// LoadCatalog runs the script at path and reads the global `catalog` table
func (r *Runtime) LoadCatalog(path string) (*models.CatalogPatch, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // Don't load any libraries by default
	})
	defer L.Close()

	r.openSafeLibs(L)
	r.registerAPI(L)

	if err := L.DoString(string(script)); err != nil {
		return nil, fmt.Errorf("failed to run script: %w", err)
	}

	tbl, ok := L.GetGlobal("catalog").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("script must define a 'catalog' table")
	}

	return r.decodeCatalog(tbl)
}

// openSafeLibs loads only the safe standard libraries
func (r *Runtime) openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)

	// Remove functions that reach outside the script
	L.SetGlobal("loadfile", lua.LNil)
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("load", lua.LNil)
	L.SetGlobal("loadstring", lua.LNil)
	L.SetGlobal("print", lua.LNil) // Use log() instead

	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Generated documents must be reproducible
	math := L.GetGlobal("math")
	if tbl, ok := math.(*lua.LTable); ok {
		L.SetField(tbl, "random", lua.LNil)
		L.SetField(tbl, "randomseed", lua.LNil)
	}
}

func (r *Runtime) registerAPI(L *lua.LState) {
	L.SetGlobal("log", L.NewFunction(r.luaLog))
}

// luaLog implements the log(message) API
func (r *Runtime) luaLog(L *lua.LState) int {
	message := L.CheckString(1)
	r.logs = append(r.logs, message)
	r.logger.Info("catalog script", "msg", message)
	return 0
}

// Logs returns the messages logged by the last script
func (r *Runtime) Logs() []string {
	return r.logs
}

func (r *Runtime) decodeCatalog(tbl *lua.LTable) (*models.CatalogPatch, error) {
	d := &decoder{}
	patch := &models.CatalogPatch{
		Name: d.optString(tbl, "name"),
	}

	if form, ok := d.optTable(tbl, "form"); ok {
		f := models.StartForm{
			Title:       d.str(form, "title"),
			Description: d.str(form, "description"),
			Placeholder: d.optString(form, "placeholder"),
		}
		if field, ok := d.optTable(form, "field"); ok {
			f.Field = models.FormField{
				Type:  d.str(field, "type"),
				Name:  d.str(field, "name"),
				Label: d.str(field, "label"),
			}
		}
		patch.Form = &f
	}

	if policy, ok := d.optTable(tbl, "policy"); ok {
		patch.Policy = &models.RouterPolicy{
			Preamble: d.str(policy, "preamble"),
			Footer:   d.optString(policy, "footer"),
		}
	}

	if agents, ok := d.optTable(tbl, "agents"); ok {
		d.each(agents, "agents", func(a *lua.LTable) {
			spec := models.AgentSpec{
				ID:          d.integer(a, "id"),
				Label:       d.str(a, "label"),
				Persona:     d.str(a, "persona"),
				Temperature: d.number(a, "temperature"),
				Memory:      models.MemoryStrategy(d.str(a, "memory")),
			}
			if pos, ok := d.optTable(a, "position"); ok {
				spec.Position = models.Position{X: d.number(pos, "x"), Y: d.number(pos, "y")}
			}
			if a.RawGetString("memory_window") != lua.LNil {
				w := d.integer(a, "memory_window")
				spec.MemoryWindow = &w
			}
			patch.Agents = append(patch.Agents, spec)
		})
	}

	if scenarios, ok := d.optTable(tbl, "scenarios"); ok {
		d.each(scenarios, "scenarios", func(s *lua.LTable) {
			patch.Scenarios = append(patch.Scenarios, models.Scenario{
				Key:         d.str(s, "key"),
				AgentID:     d.integer(s, "agent"),
				Title:       d.str(s, "title"),
				Description: d.str(s, "description"),
				Triggers:    d.str(s, "triggers"),
			})
		})
	}

	if d.err != nil {
		return nil, d.err
	}
	return patch, nil
}

// decoder reads typed fields from Lua tables, keeping the first error.
type decoder struct {
	err error
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf(format, args...)
	}
}

func (d *decoder) str(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	s, ok := v.(lua.LString)
	if !ok {
		d.fail("field %q must be a string, got %s", key, v.Type())
		return ""
	}
	return string(s)
}

func (d *decoder) optString(tbl *lua.LTable, key string) string {
	if tbl.RawGetString(key) == lua.LNil {
		return ""
	}
	return d.str(tbl, key)
}

func (d *decoder) number(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	n, ok := v.(lua.LNumber)
	if !ok {
		d.fail("field %q must be a number, got %s", key, v.Type())
		return 0
	}
	return float64(n)
}

func (d *decoder) integer(tbl *lua.LTable, key string) int {
	f := d.number(tbl, key)
	if f != float64(int(f)) {
		d.fail("field %q must be an integer, got %v", key, f)
	}
	return int(f)
}

func (d *decoder) optTable(tbl *lua.LTable, key string) (*lua.LTable, bool) {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return nil, false
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		d.fail("field %q must be a table, got %s", key, v.Type())
		return nil, false
	}
	return t, true
}

// each calls fn for every table in the array part of list, in order.
func (d *decoder) each(list *lua.LTable, name string, fn func(*lua.LTable)) {
	for i := 1; i <= list.Len(); i++ {
		item, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			d.fail("%s[%d] must be a table", name, i)
			return
		}
		fn(item)
	}
}

// IsScript checks if a file is a Lua catalog script
func IsScript(path string) bool {
	return filepath.Ext(path) == ".lua"
}
