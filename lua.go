package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/itchyny/gojq"
	lua "github.com/yuin/gopher-lua"
)

// ScriptHost is what scripts can drive through the overlay module
type ScriptHost interface {
	ToggleOverlay() error
	ShowOverlay() error
	HideOverlay() error
	CurrentProvider() ProviderEntry
	CurrentHotkey() string
	SetStatus(text string)
}

// LuaEngine manages Lua script execution
type LuaEngine struct {
	host ScriptHost
	dir  string
}

// Global Lua engine instance
var luaEngine *LuaEngine

// InitLuaEngine initializes the global Lua engine
func InitLuaEngine(host ScriptHost) error {
	luaEngine = NewLuaEngine(host, ScriptsDir())
	return luaEngine.Init()
}

// GetLuaEngine returns the global Lua engine
func GetLuaEngine() *LuaEngine {
	return luaEngine
}

// NewLuaEngine returns an engine running scripts from dir
func NewLuaEngine(host ScriptHost, dir string) *LuaEngine {
	return &LuaEngine{host: host, dir: dir}
}

// Init creates the scripts directory
func (e *LuaEngine) Init() error {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}
	return nil
}

// RunScript executes a Lua script file with optional context variables.
// Each run gets a fresh state; the value of the global "result" is returned.
func (e *LuaEngine) RunScript(scriptName string, context map[string]string) (string, error) {
	scriptPath := filepath.Join(e.dir, scriptName)

	if _, err := os.Stat(scriptPath); os.IsNotExist(err) {
		return "", fmt.Errorf("script not found: %s", scriptPath)
	}

	L := lua.NewState()
	defer L.Close()

	e.registerModule(L)

	ctx := L.NewTable()
	for k, v := range context {
		L.SetField(ctx, k, lua.LString(v))
	}
	L.SetGlobal("ctx", ctx)
	L.SetGlobal("result", lua.LNil)

	if err := L.DoFile(scriptPath); err != nil {
		return "", fmt.Errorf("script error: %w", err)
	}

	result := L.GetGlobal("result")
	if result != lua.LNil {
		return result.String(), nil
	}
	return "", nil
}

// registerModule installs the overlay module into L
func (e *LuaEngine) registerModule(L *lua.LState) {
	mod := L.NewTable()
	r := &scriptRun{host: e.host}

	fns := map[string]lua.LGFunction{
		"toggle":       r.toggle,
		"show":         r.show,
		"hide":         r.hide,
		"get_provider": r.getProvider,
		"get_hotkey":   r.getHotkey,
		"set_status":   r.setStatus,
		"http_get":     r.httpGet,
		"http_post":    r.httpPost,
		"copy":         luaCopy,
		"paste":        luaPaste,
		"open_url":     luaOpenURL,
		"jq":           luaJQ,
		"exec":         luaExec,
		"shell":        luaShell,
		"sleep":        luaSleep,
		"env":          luaEnv,
		"log":          luaLog,
	}
	for name, fn := range fns {
		L.SetField(mod, name, L.NewFunction(fn))
	}
	L.SetGlobal("overlay", mod)
}

// scriptRun holds per-run state: the host and a cookie session shared by
// the HTTP calls of one script.
type scriptRun struct {
	host    ScriptHost
	session *HTTPSession
}

func pushResult(L *lua.LState, err error) int {
	if err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// overlay.toggle() -> ok, error
// Unlike the hotkey, it does not run the on_show/on_hide scripts.
func (r *scriptRun) toggle(L *lua.LState) int {
	if r.host == nil {
		return pushResult(L, fmt.Errorf("no overlay"))
	}
	return pushResult(L, r.host.ToggleOverlay())
}

func (r *scriptRun) show(L *lua.LState) int {
	if r.host == nil {
		return pushResult(L, fmt.Errorf("no overlay"))
	}
	return pushResult(L, r.host.ShowOverlay())
}

func (r *scriptRun) hide(L *lua.LState) int {
	if r.host == nil {
		return pushResult(L, fmt.Errorf("no overlay"))
	}
	return pushResult(L, r.host.HideOverlay())
}

// overlay.get_provider() -> name, url
func (r *scriptRun) getProvider(L *lua.LState) int {
	if r.host == nil {
		L.Push(lua.LNil)
		return 1
	}
	p := r.host.CurrentProvider()
	L.Push(lua.LString(p.Name))
	L.Push(lua.LString(p.URL))
	return 2
}

// overlay.get_hotkey() -> "Command + Space"
func (r *scriptRun) getHotkey(L *lua.LState) int {
	if r.host == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(r.host.CurrentHotkey()))
	return 1
}

// overlay.set_status(text)
func (r *scriptRun) setStatus(L *lua.LState) int {
	text := L.CheckString(1)
	if r.host != nil {
		r.host.SetStatus(text)
	}
	return 0
}

type httpOpts struct {
	headers    map[string]string
	timeout    time.Duration
	skipVerify bool
}

func readHTTPOpts(L *lua.LState, headersIdx int) httpOpts {
	o := httpOpts{headers: make(map[string]string)}
	if t := L.OptTable(headersIdx, nil); t != nil {
		t.ForEach(func(k, v lua.LValue) {
			o.headers[k.String()] = v.String()
		})
	}
	if t := L.OptTable(headersIdx+1, nil); t != nil {
		if n, ok := t.RawGetString("timeout").(lua.LNumber); ok {
			o.timeout = time.Duration(float64(n) * float64(time.Second))
		}
		o.skipVerify = lua.LVAsBool(t.RawGetString("skip_verify"))
	}
	return o
}

func (r *scriptRun) sessionFor(L *lua.LState) *HTTPSession {
	if r.session == nil {
		s, err := NewHTTPSession(false)
		if err != nil {
			L.RaiseError("http session: %v", err)
		}
		r.session = s
	}
	return r.session
}

// overlay.http_get(url, headers, {timeout=s, skip_verify=bool}) -> body, error
// Requests share cookies within one script run unless skip_verify is set.
func (r *scriptRun) httpGet(L *lua.LState) int {
	url := L.CheckString(1)
	o := readHTTPOpts(L, 2)

	var body string
	var err error
	if o.skipVerify {
		body, err = httpGet(url, o.headers, o.timeout, true)
	} else {
		body, err = r.sessionFor(L).Get(url, o.headers, o.timeout)
	}
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(body))
	return 1
}

// overlay.http_post(url, body, headers, opts) -> response, error
func (r *scriptRun) httpPost(L *lua.LState) int {
	url := L.CheckString(1)
	body := L.CheckString(2)
	o := readHTTPOpts(L, 3)

	var resp string
	var err error
	if o.skipVerify {
		resp, err = httpPost(url, body, o.headers, o.timeout, true)
	} else {
		resp, err = r.sessionFor(L).Post(url, body, o.headers, o.timeout)
	}
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(resp))
	return 1
}

// overlay.copy(text) -> ok, error
func luaCopy(L *lua.LState) int {
	return pushResult(L, copyToClipboard(L.CheckString(1)))
}

// overlay.paste() -> text, error
func luaPaste(L *lua.LState) int {
	text, err := pasteFromClipboard()
	if err != nil {
		L.Push(lua.LString(""))
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(text))
	return 1
}

// overlay.open_url(url) -> ok, error
func luaOpenURL(L *lua.LState) int {
	return pushResult(L, openBrowser(L.CheckString(1)))
}

// overlay.jq(json, query) -> {results...}, error
func luaJQ(L *lua.LState) int {
	input := L.CheckString(1)
	src := L.CheckString(2)

	results, err := runJQ(input, src)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	tbl := L.NewTable()
	for _, v := range results {
		tbl.Append(toLua(L, v))
	}
	L.Push(tbl)
	return 1
}

func runJQ(input, src string) ([]any, error) {
	query, err := gojq.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("jq parse: %w", err)
	}
	var v any
	if err := json.Unmarshal([]byte(input), &v); err != nil {
		return nil, fmt.Errorf("jq input: %w", err)
	}

	var out []any
	iter := query.Run(v)
	for {
		x, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := x.(error); isErr {
			return nil, fmt.Errorf("jq: %w", err)
		}
		out = append(out, x)
	}
	return out, nil
}

// toLua converts a decoded JSON value to a Lua value
func toLua(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case string:
		return lua.LString(x)
	case float64:
		return lua.LNumber(x)
	case int:
		return lua.LNumber(x)
	case []any:
		t := L.NewTable()
		for _, e := range x {
			t.Append(toLua(L, e))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for k, e := range x {
			L.SetField(t, k, toLua(L, e))
		}
		return t
	default:
		return lua.LString(fmt.Sprint(x))
	}
}

// overlay.exec(cmd, args...) -> output, error
func luaExec(L *lua.LState) int {
	cmdName := L.CheckString(1)
	var args []string
	for i := 2; i <= L.GetTop(); i++ {
		args = append(args, L.CheckString(i))
	}

	output, err := exec.Command(cmdName, args...).CombinedOutput()
	L.Push(lua.LString(string(output)))
	if err != nil {
		L.Push(lua.LString(err.Error()))
		return 2
	}
	return 1
}

// overlay.shell(command) -> output, error
func luaShell(L *lua.LState) int {
	command := L.CheckString(1)

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", command)
	} else {
		cmd = exec.Command("sh", "-c", command)
	}

	output, err := cmd.CombinedOutput()
	L.Push(lua.LString(string(output)))
	if err != nil {
		L.Push(lua.LString(err.Error()))
		return 2
	}
	return 1
}

// overlay.sleep(milliseconds)
func luaSleep(L *lua.LState) int {
	time.Sleep(time.Duration(L.CheckInt(1)) * time.Millisecond)
	return 0
}

// overlay.env(name) -> value
func luaEnv(L *lua.LState) int {
	L.Push(lua.LString(os.Getenv(L.CheckString(1))))
	return 1
}

// overlay.log(message)
func luaLog(L *lua.LState) int {
	LogInfo("[Lua] %s", L.CheckString(1))
	return 0
}

// runHookScript runs script for hook if both the engine and the script are
// configured. Errors are logged and returned.
func runHookScript(script, hook string, ctx map[string]string) (string, error) {
	if script == "" || luaEngine == nil {
		return "", nil
	}
	result, err := luaEngine.RunScript(script, ctx)
	LogScriptExecuted(script, hook, err)
	return result, err
}
