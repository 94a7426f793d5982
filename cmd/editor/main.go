//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"syscall/js"

	"github.com/menucraft/menucraft/internal/catalog"
	"github.com/menucraft/menucraft/internal/document"
	"github.com/menucraft/menucraft/internal/editor"
	"github.com/menucraft/menucraft/internal/imgcache"
	"github.com/menucraft/menucraft/internal/layout"
	"github.com/menucraft/menucraft/internal/persist"
	"github.com/menucraft/menucraft/internal/render"
)

// canvasMargin is the blank space around the rendered page, in device
// pixels.
const canvasMargin = 40.0

var (
	store    *layout.Store
	session  *editor.Session
	renderer *render.Renderer
	images   *imgcache.Cache
	api      *catalog.Client
	projects *persist.Projects
	saver    *persist.AutoSaver
)

func main() {
	store = layout.NewStore()
	fonts := render.NewFontBank()
	images = imgcache.New(
		imgcache.HTTPLoader(http.DefaultClient),
		func(source string) { notifyRepaint() },
	)
	renderer = render.NewRenderer(fonts, images)
	session = editor.NewSession(store, fonts)

	projects = persist.NewProjects(localStore{})
	saver = persist.NewAutoSaver(projects, store.Project)
	if err := saver.Start(); err != nil {
		js.Global().Get("console").Call("error", "autosave start: "+err.Error())
	}

	bridge := js.Global().Get("Object").New()

	// --- Project lifecycle ---
	bridge.Set("createProject", js.FuncOf(createProject))
	bridge.Set("openProject", js.FuncOf(openProject))
	bridge.Set("getProject", js.FuncOf(getProject))
	bridge.Set("renameProject", js.FuncOf(renameProject))
	bridge.Set("saveProject", js.FuncOf(saveProject))
	bridge.Set("loadProject", js.FuncOf(loadProject))
	bridge.Set("listProjects", js.FuncOf(listProjects))
	bridge.Set("deleteProject", js.FuncOf(deleteProject))

	// --- Pages and layers ---
	bridge.Set("setActivePage", js.FuncOf(setActivePage))
	bridge.Set("setActiveLayer", js.FuncOf(setActiveLayer))
	bridge.Set("addPage", js.FuncOf(addPage))
	bridge.Set("deletePage", js.FuncOf(deletePage))
	bridge.Set("duplicatePage", js.FuncOf(duplicatePage))
	bridge.Set("reorderPages", js.FuncOf(reorderPages))
	bridge.Set("addLayer", js.FuncOf(addLayer))
	bridge.Set("deleteLayer", js.FuncOf(deleteLayer))
	bridge.Set("duplicateLayer", js.FuncOf(duplicateLayer))
	bridge.Set("reorderLayers", js.FuncOf(reorderLayers))
	bridge.Set("updateLayer", js.FuncOf(updateLayer))

	// --- Elements ---
	bridge.Set("addElement", js.FuncOf(addElement))
	bridge.Set("updateElement", js.FuncOf(updateElement))
	bridge.Set("deleteElement", js.FuncOf(deleteElement))
	bridge.Set("duplicateElement", js.FuncOf(duplicateElement))
	bridge.Set("moveElement", js.FuncOf(moveElement))
	bridge.Set("reorderElements", js.FuncOf(reorderElements))

	// --- History and clipboard ---
	bridge.Set("undo", js.FuncOf(undo))
	bridge.Set("redo", js.FuncOf(redo))
	bridge.Set("canUndo", js.FuncOf(canUndo))
	bridge.Set("canRedo", js.FuncOf(canRedo))
	bridge.Set("copySelection", js.FuncOf(copySelection))
	bridge.Set("cutSelection", js.FuncOf(cutSelection))
	bridge.Set("paste", js.FuncOf(paste))

	// --- Interaction ---
	bridge.Set("pointerDown", js.FuncOf(pointerDown))
	bridge.Set("pointerMove", js.FuncOf(pointerMove))
	bridge.Set("pointerUp", js.FuncOf(pointerUp))
	bridge.Set("keyDown", js.FuncOf(keyDown))
	bridge.Set("wheel", js.FuncOf(wheel))
	bridge.Set("setTool", js.FuncOf(setTool))
	bridge.Set("getSelection", js.FuncOf(getSelection))

	// --- Rendering ---
	bridge.Set("renderPage", js.FuncOf(renderPage))
	bridge.Set("renderThumbnail", js.FuncOf(renderThumbnail))

	// --- Catalog ---
	bridge.Set("setAPIBase", js.FuncOf(setAPIBase))
	bridge.Set("setAPIToken", js.FuncOf(setAPIToken))
	bridge.Set("bindSubcategory", js.FuncOf(bindSubcategory))

	js.Global().Set("menucraft", bridge)
	js.Global().Set("menucraftReady", js.ValueOf(true))

	// Keep the Go runtime alive.
	select {}
}

// notifyRepaint asks the host page to redraw after an async image load.
func notifyRepaint() {
	cb := js.Global().Get("menucraftRepaint")
	if cb.Type() == js.TypeFunction {
		cb.Invoke()
	}
}

func ok() any                { return js.ValueOf(map[string]any{"ok": true}) }
func fail(msg string) any    { return js.ValueOf(map[string]any{"error": msg}) }
func idResult(id string) any { return js.ValueOf(map[string]any{"ok": true, "id": id}) }

// --- Project lifecycle ---

func createProject(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return fail("name and format required")
	}
	name := args[0].String()
	format := args[1].String()
	var wmm, hmm float64
	if len(args) >= 4 {
		wmm = args[2].Float()
		hmm = args[3].Float()
	}
	proj := store.CreateProject(name, format, wmm, hmm)
	session.SetActivePage(store.ActivePageID())
	return idResult(proj.ID)
}

func openProject(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing project JSON")
	}
	var proj document.Project
	if err := json.Unmarshal([]byte(args[0].String()), &proj); err != nil {
		return fail(err.Error())
	}
	store.Open(&proj)
	session.SetActivePage(store.ActivePageID())
	return ok()
}

func getProject(this js.Value, args []js.Value) any {
	proj := store.Project()
	if proj == nil {
		return js.ValueOf("")
	}
	data, err := json.Marshal(proj)
	if err != nil {
		return fail(err.Error())
	}
	return js.ValueOf(string(data))
}

func renameProject(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing name")
	}
	store.RenameProject(args[0].String())
	return ok()
}

// saveProject writes the open project to local storage immediately, outside
// the autosave schedule.
func saveProject(this js.Value, args []js.Value) any {
	if err := saver.Flush(context.Background()); err != nil {
		return fail(err.Error())
	}
	return ok()
}

func loadProject(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing project id")
	}
	proj, err := projects.Load(context.Background(), args[0].String())
	if err != nil {
		return fail(err.Error())
	}
	store.Open(proj)
	session.SetActivePage(store.ActivePageID())
	return ok()
}

func listProjects(this js.Value, args []js.Value) any {
	summaries, err := projects.List(context.Background())
	if err != nil {
		return fail(err.Error())
	}
	data, err := json.Marshal(summaries)
	if err != nil {
		return fail(err.Error())
	}
	return js.ValueOf(string(data))
}

func deleteProject(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing project id")
	}
	if err := projects.Delete(context.Background(), args[0].String()); err != nil {
		return fail(err.Error())
	}
	return ok()
}

// --- Pages and layers ---

func setActivePage(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing page id")
	}
	session.SetActivePage(args[0].String())
	return ok()
}

func setActiveLayer(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing layer id")
	}
	store.SetActiveLayer(args[0].String())
	return ok()
}

func addPage(this js.Value, args []js.Value) any {
	var override *document.Format
	if len(args) >= 1 && args[0].Type() == js.TypeString && args[0].String() != "" {
		var wmm, hmm float64
		if len(args) >= 3 {
			wmm = args[1].Float()
			hmm = args[2].Float()
		}
		f := document.ResolveFormat(args[0].String(), wmm, hmm)
		override = &f
	}
	return idResult(store.AddPage(override))
}

func deletePage(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing page id")
	}
	store.DeletePage(args[0].String())
	return ok()
}

func duplicatePage(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing page id")
	}
	return idResult(store.DuplicatePage(args[0].String()))
}

func reorderPages(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return fail("from and to required")
	}
	store.ReorderPages(args[0].Int(), args[1].Int())
	return ok()
}

func addLayer(this js.Value, args []js.Value) any {
	return idResult(store.AddLayer(store.ActivePageID()))
}

func deleteLayer(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing layer id")
	}
	store.DeleteLayer(store.ActivePageID(), args[0].String())
	return ok()
}

func duplicateLayer(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing layer id")
	}
	return idResult(store.DuplicateLayer(store.ActivePageID(), args[0].String()))
}

func reorderLayers(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return fail("from and to required")
	}
	store.ReorderLayers(store.ActivePageID(), args[0].Int(), args[1].Int())
	return ok()
}

func updateLayer(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return fail("layer id and patch required")
	}
	var patch layout.LayerPatch
	if err := json.Unmarshal([]byte(args[1].String()), &patch); err != nil {
		return fail(err.Error())
	}
	store.UpdateLayer(store.ActivePageID(), args[0].String(), patch)
	return ok()
}

// --- Elements ---

func addElement(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing element JSON")
	}
	var el document.Element
	if err := json.Unmarshal([]byte(args[0].String()), &el); err != nil {
		return fail(err.Error())
	}
	return idResult(store.AddElement(store.ActivePageID(), store.ActiveLayerID(), el))
}

func updateElement(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return fail("element id and patch required")
	}
	id := args[0].String()
	var patch layout.ElementPatch
	if err := json.Unmarshal([]byte(args[1].String()), &patch); err != nil {
		return fail(err.Error())
	}
	pageID := store.ActivePageID()
	_, layerID := store.ElementByID(pageID, id)
	store.UpdateElement(pageID, layerID, id, patch)
	return ok()
}

func deleteElement(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing element id")
	}
	id := args[0].String()
	pageID := store.ActivePageID()
	_, layerID := store.ElementByID(pageID, id)
	store.DeleteElement(pageID, layerID, id)
	return ok()
}

func duplicateElement(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing element id")
	}
	id := args[0].String()
	pageID := store.ActivePageID()
	_, layerID := store.ElementByID(pageID, id)
	return idResult(store.DuplicateElement(pageID, layerID, id))
}

func moveElement(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return fail("element id and target layer required")
	}
	id := args[0].String()
	pageID := store.ActivePageID()
	_, fromLayer := store.ElementByID(pageID, id)
	store.MoveElement(pageID, fromLayer, args[1].String(), id)
	return ok()
}

func reorderElements(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return fail("layer id, from and to required")
	}
	store.ReorderElements(store.ActivePageID(), args[0].String(), args[1].Int(), args[2].Int())
	return ok()
}

// --- History and clipboard ---

func undo(this js.Value, args []js.Value) any    { store.Undo(); return ok() }
func redo(this js.Value, args []js.Value) any    { store.Redo(); return ok() }
func canUndo(this js.Value, args []js.Value) any { return js.ValueOf(store.CanUndo()) }
func canRedo(this js.Value, args []js.Value) any { return js.ValueOf(store.CanRedo()) }

func copySelection(this js.Value, args []js.Value) any {
	store.Copy(session.Selection())
	return ok()
}

func cutSelection(this js.Value, args []js.Value) any {
	store.Cut(session.Selection())
	return ok()
}

func paste(this js.Value, args []js.Value) any {
	ids := store.Paste()
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return js.ValueOf(map[string]any{"ok": true, "ids": out})
}

// --- Interaction ---

func pointerDown(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return nil
	}
	mods := editor.Modifiers{}
	if len(args) >= 3 {
		mods.Shift = args[2].Truthy()
	}
	session.PointerDown(args[0].Float(), args[1].Float(), mods)
	return nil
}

func pointerMove(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return nil
	}
	session.PointerMove(args[0].Float(), args[1].Float())
	return nil
}

func pointerUp(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return nil
	}
	session.PointerUp(args[0].Float(), args[1].Float())
	return nil
}

func keyDown(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return nil
	}
	session.KeyDown(args[0].String())
	return nil
}

func wheel(this js.Value, args []js.Value) any {
	if len(args) < 4 {
		return nil
	}
	pinch := len(args) >= 5 && args[4].Truthy()
	session.Wheel(args[0].Float(), args[1].Float(), args[2].Float(), args[3].Float(), pinch)
	return nil
}

func setTool(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return nil
	}
	session.SetTool(editor.Tool(args[0].String()))
	return nil
}

func getSelection(this js.Value, args []js.Value) any {
	ids := session.Selection()
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return js.ValueOf(out)
}

// --- Rendering ---

// renderPage paints the active page at the current zoom and hands the RGBA
// buffer to JS for a putImageData call.
func renderPage(this js.Value, args []js.Value) any {
	page := store.ActivePage()
	if page == nil {
		return fail("no active page")
	}
	img := renderer.RenderPage(page, session.RenderOptions(canvasMargin))
	bounds := img.Bounds()
	buf := js.Global().Get("Uint8ClampedArray").New(len(img.Pix))
	js.CopyBytesToJS(buf, img.Pix)
	return js.ValueOf(map[string]any{
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
		"data":   buf,
	})
}

func renderThumbnail(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return fail("page id and max width required")
	}
	page := store.PageByID(args[0].String())
	if page == nil {
		return fail("page not found")
	}
	img := renderer.RenderThumbnail(page, args[1].Int())
	bounds := img.Bounds()
	buf := js.Global().Get("Uint8ClampedArray").New(len(img.Pix))
	js.CopyBytesToJS(buf, img.Pix)
	return js.ValueOf(map[string]any{
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
		"data":   buf,
	})
}

// --- Catalog ---

func setAPIBase(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return fail("missing base URL")
	}
	api = catalog.NewClient(args[0].String(), http.DefaultClient)
	return ok()
}

func setAPIToken(this js.Value, args []js.Value) any {
	if api == nil || len(args) < 1 {
		return fail("client not configured")
	}
	api.SetToken(args[0].String())
	return ok()
}

// bindSubcategory fetches a fresh snapshot for the subcategory and embeds
// it into the given data element.
func bindSubcategory(this js.Value, args []js.Value) any {
	if api == nil {
		return fail("client not configured")
	}
	if len(args) < 2 {
		return fail("element id and subcategory JSON required")
	}
	id := args[0].String()
	var sc catalog.Subcategory
	if err := json.Unmarshal([]byte(args[1].String()), &sc); err != nil {
		return fail(err.Error())
	}

	pageID := store.ActivePageID()
	el, layerID := store.ElementByID(pageID, id)
	if el == nil || el.Kind != document.ElementKindData || el.Data == nil {
		return fail("not a data element")
	}

	snap, err := api.SubcategorySnapshot(context.Background(), sc)
	if err != nil {
		return fail(err.Error())
	}
	data := *el.Data
	data.DataID = sc.ID
	data.Snapshot = snap
	store.UpdateElement(pageID, layerID, id, layout.ElementPatch{Data: &data})
	return ok()
}
