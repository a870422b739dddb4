package richtext

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewriter walks parsed HTML fragments and swaps entity representations. A nil
// features pointer enables every registered handler.
type rewriter struct {
	handlers *Handlers
	resolver Resolver
	features *FeatureSet
}

func (r rewriter) enabled(handler EntityHandler) bool {
	return r.features == nil || r.features.Has(handler.Feature())
}

// expand converts storage entities into editor markup.
func (r rewriter) expand(source string) (string, error) {
	if source == "" {
		return "", nil
	}
	root, err := parseFragment(source)
	if err != nil {
		return "", err
	}
	if err := walk(root, r.expandNode); err != nil {
		return "", err
	}
	return renderChildren(root)
}

// contract converts editor entities back into storage markup.
func (r rewriter) contract(source string) (string, error) {
	if source == "" {
		return "", nil
	}
	root, err := parseFragment(source)
	if err != nil {
		return "", err
	}
	if err := walk(root, r.contractNode); err != nil {
		return "", err
	}
	return renderChildren(root)
}

func (r rewriter) expandNode(n *html.Node) error {
	switch n.DataAtom {
	case atom.A:
		linkType, ok := attr(n, EntityLink.storageTypeAttr())
		if !ok {
			return nil
		}
		handler, found := r.handlers.Lookup(EntityLink, linkType)
		if !found || !r.enabled(handler) {
			unwrap(n)
			return nil
		}
		attrs, err := handler.ToEditor(storageAttrs(n, EntityLink), r.resolver)
		if err != nil {
			return err
		}
		setAttrs(n, attrs)
	case atom.Embed:
		embedType, ok := attr(n, EntityEmbed.storageTypeAttr())
		if !ok {
			return nil
		}
		handler, found := r.handlers.Lookup(EntityEmbed, embedType)
		if !found || !r.enabled(handler) {
			remove(n)
			return nil
		}
		attrs, err := handler.ToEditor(storageAttrs(n, EntityEmbed), r.resolver)
		if err != nil {
			return err
		}
		n.Data = "img"
		n.DataAtom = atom.Img
		setAttrs(n, attrs)
	}
	return nil
}

func (r rewriter) contractNode(n *html.Node) error {
	switch n.DataAtom {
	case atom.A:
		linkType, ok := attr(n, EntityLink.editorTypeAttr())
		if !ok {
			href, hasHref := attr(n, "href")
			if !hasHref {
				unwrap(n)
				return nil
			}
			setAttrs(n, map[string]string{"href": href})
			return nil
		}
		handler, found := r.handlers.Lookup(EntityLink, linkType)
		if !found || !r.enabled(handler) {
			unwrap(n)
			return nil
		}
		setAttrs(n, handler.ToStorage(attrMap(n)))
	case atom.Img:
		embedType, ok := attr(n, EntityEmbed.editorTypeAttr())
		if !ok {
			remove(n)
			return nil
		}
		handler, found := r.handlers.Lookup(EntityEmbed, embedType)
		if !found || !r.enabled(handler) {
			remove(n)
			return nil
		}
		n.Data = "embed"
		n.DataAtom = atom.Embed
		setAttrs(n, handler.ToStorage(attrMap(n)))
	}
	return nil
}

func parseFragment(source string) (*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(source), context)
	if err != nil {
		return nil, fmt.Errorf("richtext: parse fragment: %w", err)
	}
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, node := range nodes {
		root.AppendChild(node)
	}
	return root, nil
}

func renderChildren(root *html.Node) (string, error) {
	var buf bytes.Buffer
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buf, child); err != nil {
			return "", fmt.Errorf("richtext: render fragment: %w", err)
		}
	}
	return buf.String(), nil
}

// walk visits descendants depth first, children before parents, so visitors
// may detach or unwrap the node they receive.
func walk(n *html.Node, visit func(*html.Node) error) error {
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		if err := walk(child, visit); err != nil {
			return err
		}
		if child.Type == html.ElementNode {
			if err := visit(child); err != nil {
				return err
			}
		}
		child = next
	}
	return nil
}

func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		n.RemoveChild(child)
		parent.InsertBefore(child, n)
		child = next
	}
	parent.RemoveChild(n)
}

func remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attrMap(n *html.Node) map[string]string {
	out := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		if a.Namespace != "" {
			continue
		}
		out[a.Key] = a.Val
	}
	return out
}

// storageAttrs drops the entity type attribute, which handlers re-add.
func storageAttrs(n *html.Node, kind EntityKind) map[string]string {
	attrs := attrMap(n)
	delete(attrs, kind.storageTypeAttr())
	return attrs
}

func setAttrs(n *html.Node, attrs map[string]string) {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	n.Attr = n.Attr[:0]
	for _, key := range keys {
		n.Attr = append(n.Attr, html.Attribute{Key: key, Val: attrs[key]})
	}
}
