package analyze

import (
	"fmt"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"cefgen/internal/diagnostic"
	"cefgen/internal/schema"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedImports

// Checker verifies capability requirements of annotated fields.
type Checker struct {
	// generated holds the names of manifest-declared types; they provide
	// the full cef.Event surface once generated.
	generated map[string]struct{}
	// loaded caches packages by path. A nil entry records a failed load.
	loaded map[string]*packages.Package
}

// NewChecker creates a Checker aware of the manifest-declared types.
func NewChecker(local []*schema.TypeSchema) *Checker {
	generated := make(map[string]struct{}, len(local))
	for _, ts := range local {
		generated[ts.Name] = struct{}{}

		// Union variants become generated structs too.
		for i := range ts.Variants {
			generated[ts.VariantStructName(&ts.Variants[i])] = struct{}{}
		}
	}

	return &Checker{
		generated: generated,
		loaded:    make(map[string]*packages.Package),
	}
}

// Check walks every field annotation that demands a capability and verifies
// the field's type provides it. Findings accumulate into d.
func (c *Checker) Check(typeSchemas []*schema.TypeSchema, d *diagnostic.Diagnostics) {
	for _, ts := range typeSchemas {
		c.checkFields(ts.Fields, ts.Name, "", d)

		for i := range ts.Variants {
			v := &ts.Variants[i]
			c.checkFields(v.Fields, ts.Name, v.Name, d)
		}
	}
}

func (c *Checker) checkFields(fields []schema.Field, typeName, variantName string, d *diagnostic.Diagnostics) {
	for i := range fields {
		f := &fields[i]
		site := schema.SitePath(typeName, variantName, f)

		for _, a := range f.Annotations {
			switch a.Kind {
			case schema.AnnInherit:
				c.checkCapability(f.GoType, a.Header.Method(),
					fmt.Sprintf("cef.%s", a.Header.Interface()), site, d)
			case schema.AnnExtensionGobble:
				c.checkCapability(f.GoType, "CefExtensions", "cef.Extensions", site, d)
			}

			// Display needs nothing: %v rendering is total.
		}
	}
}

// checkCapability verifies that goType provides the named method.
func (c *Checker) checkCapability(goType, method, iface, site string, d *diagnostic.Diagnostics) {
	goType = strings.TrimPrefix(goType, "*")

	if _, ok := c.generated[goType]; ok {
		return
	}

	dot := strings.LastIndex(goType, ".")
	if dot < 0 {
		d.AddErrorf(diagnostic.CodeCapabilityMissing, site,
			"type %q cannot provide %s; it is neither declared in this manifest nor package-qualified",
			goType, iface)

		return
	}

	pkgPath, typeName := goType[:dot], goType[dot+1:]

	pkg := c.load(pkgPath)
	if pkg == nil {
		d.AddWarning(diagnostic.CodeCapabilityUnverifiable,
			fmt.Sprintf("package %q could not be loaded; cannot verify %s provides %s", pkgPath, goType, iface),
			site)

		return
	}

	obj := pkg.Types.Scope().Lookup(typeName)
	if obj == nil {
		d.AddWarning(diagnostic.CodeCapabilityUnverifiable,
			fmt.Sprintf("type %q not found in package %q; cannot verify it provides %s", typeName, pkgPath, iface),
			site)

		return
	}

	if !hasMethod(obj.Type(), method) {
		d.AddErrorf(diagnostic.CodeCapabilityMissing, site,
			"type %q has no method %s and cannot provide %s", goType, method, iface)
	}
}

// load loads one package by path, caching both successes and failures.
func (c *Checker) load(pkgPath string) *packages.Package {
	if pkg, ok := c.loaded[pkgPath]; ok {
		return pkg
	}

	cfg := &packages.Config{Mode: LoadMode}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil || len(pkgs) == 0 || len(pkgs[0].Errors) > 0 || pkgs[0].Types == nil {
		c.loaded[pkgPath] = nil
		return nil
	}

	c.loaded[pkgPath] = pkgs[0]

	return pkgs[0]
}

// hasMethod reports whether t (or *t) declares or promotes the named method.
func hasMethod(t types.Type, name string) bool {
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(t), true, nil, name)
	if obj == nil {
		return false
	}

	_, isFunc := obj.(*types.Func)

	return isFunc
}
