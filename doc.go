// Package schemagen derives draft-04 JSON Schema documents from Go types.
//
// - Build walks a type with reflection, honoring json/xml/jsonschema/validate
//   struct tags, an optional YAML metadata table and Go doc comments
// - Named structs are inlined on first occurrence (carrying an id) and
//   referenced by simple name afterwards, so cyclic types terminate
// - Generator and Run drive a batch: enumerate a source tree, load each type,
//   render it and write <Simple>.json; failures are contained per type
//
// Design policy:
// - Keep only public APIs in the root package; put the descriptor graph,
//   introspection and reference resolution under internal/.
// - Place the schema node model under jsonschema/, output under sink/, and
//   the CLI under cli and cmd/schemagen.
//
// Typical usage:
//
//	reg := schemagen.NewRegistry().MustRegister(models.Person{})
//	data, err := schemagen.BuildText(reflect.TypeOf(models.Person{}))
//
//	cfg := config.Default()
//	cfg.SourceDirectory = "./models"
//	rep, err := schemagen.Run(cfg, reg)
//	fmt.Println(rep.Count(), rep.Err())
package schemagen
