package tools

// RegisterAll populates the registry with the full modeling catalog. Panics on
// a duplicate name, which would be a programming error in the catalog itself.
func RegisterAll(r *Registry) {
	registerInfoTools(r)
	registerPrimitiveTools(r)
	registerMeshTools(r)
	registerBooleanTools(r)
	registerSurfaceTools(r)
	registerMaterialTools(r)
	registerModifierTools(r)
	registerSceneTools(r)
}

// Schema property constructors. The catalog is a big table; these keep each
// entry down to the parts that differ.

func numProp(desc string, def float64) Property {
	return Property{Type: "number", Description: desc, Default: def}
}

func intProp(desc string, def int) Property {
	return Property{Type: "integer", Description: desc, Default: def}
}

func strProp(desc string) Property {
	return Property{Type: "string", Description: desc}
}

func strPropDefault(desc, def string) Property {
	return Property{Type: "string", Description: desc, Default: def}
}

func boolProp(desc string, def bool) Property {
	return Property{Type: "boolean", Description: desc, Default: def}
}

func vecProp(desc string, def []float64) Property {
	return Property{
		Type:        "array",
		Description: desc,
		Default:     def,
		Items:       &PropertyItems{Type: "number"},
	}
}

func enumProp(desc, def string, values ...string) Property {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return Property{Type: "string", Description: desc, Default: def, Enum: enum}
}
