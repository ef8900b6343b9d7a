// Package touchtree resolves which nodes of a 2D interaction tree receive a
// pointer or touch event, and dispatches events to them on top of
// [Ebitengine].
//
// # Hit testing
//
// Every interactive surface is a [Node]. Nodes form a tree; children are
// listed bottom-most first and the last child is painted on top. Each node
// carries a [PointerEvents] mode:
//
//	auto      node and children receive events (default)
//	none      neither the node nor any descendant receives events
//	box-none  the node is transparent, its children still receive events
//	box-only  the node receives events, its children never do
//
// [HitTest] returns the [HitChain] for a point: the deepest hit node first,
// then each ancestor that joins the chain, ending at the tested root.
//
//	root := touchtree.NewBox("root", 640, 480)
//	overlay := touchtree.NewBox("overlay", 640, 480)
//	overlay.PointerEvents = touchtree.PointerEventsBoxNone
//	button := touchtree.NewBox("button", 100, 40)
//	overlay.AddChild(button)
//	root.AddChild(overlay)
//
//	chain := touchtree.HitTest(root, 10, 10) // [button root]
//
// HitTest is pure: it reads the tree, computes transforms on the way down and
// allocates only the returned chain. Bounds come from [Node.HitShape] or,
// when that is nil, from [Node.Width] and [Node.Height].
//
// # Dispatch
//
// A [Scene] owns a tree and turns Ebitengine mouse and touch input into
// pointer events. Scene-level handlers run once per event; node callbacks
// then run along the chain, deepest first, until one calls
// [PointerContext.StopPropagation]. Enter and leave fire per node as it joins
// or leaves a pointer's chain.
//
//	scene := touchtree.NewScene()
//	scene.Root().AddChild(root)
//	button.OnClick = func(ctx touchtree.ClickContext) { ... }
//	touchtree.Run(scene, touchtree.RunConfig{Title: "demo", ShowChain: true})
//
// Trees can also be loaded from YAML with [LoadTree], and interaction can be
// scripted with [LoadTestScript].
//
// [Ebitengine]: https://ebitengine.org
package touchtree
