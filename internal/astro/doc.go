// Package astro derives the visual quantities of the black-hole scene from a
// [config.Config].
//
// The formulas are stylized, not a general-relativity solver:
//
//   - Schwarzschild radius: rs = 0.05 · M (scene units)
//   - disk inner edge (ISCO): 3 rs, outer edge: 12 rs
//   - base disk temperature: T · (M/10)^¼ · Ṁ^¼ (Shakura-Sunyaev scaling)
//   - disk color: black-body approximation of the base temperature
//
// Everything here is pure and recomputed whenever the configuration changes:
//
//	d := astro.Derive(cfg)
//	grad := astro.DiskGradient(d.BaseTemperature, 128)
package astro
