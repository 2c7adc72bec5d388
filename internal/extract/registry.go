package extract

import "log/slog"

// Registry maps payer display names (razón social, as they appear in the
// client list) to their extraction strategies. Adding a payer means
// registering a new strategy; no extraction code branches on payer names.
type Registry map[string]Extractor

// Register binds a strategy to one or more display names, replacing any
// previous binding.
func (r Registry) Register(ext Extractor, names ...string) {
	for _, name := range names {
		r[name] = ext
	}
}

// Lookup returns the strategy registered for a display name.
func (r Registry) Lookup(name string) (Extractor, bool) {
	ext, ok := r[name]
	return ext, ok
}

// NewRegistry returns the registry with every known payer bound under the
// display names its remittances arrive as. pdfPages caps how many pages the
// PDF-mining payers read per statement; <= 0 selects the default.
func NewRegistry(logger *slog.Logger, pdfPages int) Registry {
	r := Registry{}
	r.Register(NewAXA(logger),
		"AXA COLPATRIA SEGUROS SA",
		"AXA COLPATRIA SEGUROS DE VIDA SA",
		"AXA COLPATRIA MEDICINA PREPAGADA",
	)
	r.Register(NewADRES(logger),
		"ADMINISTRADORA DE LOS RECURSOS DEL SISTEMA GENERAL DE SEGURIDAD SOCIAL EN SALUD - ADRES",
	)
	r.Register(NewPrevisora(logger),
		"LA PREVISORA SA COMPAÑÍA DE SEGUROS",
		"FIDEICOMISOS PATRIMONIOS AUTÓNOMOS FIDUCIARIA LA PREVISORA S.A.",
		"LA PREVISORA S A COMPANIA DE SEGURO",
	)
	r.Register(NewMundial(logger),
		"COMPAÑIA MUNDIAL DE SEGUROS SA",
	)
	r.Register(NewSura(logger),
		"SEGUROS GENERALES SURAMERICANA SA",
		"EPS SURAMERICANA SA",
		"EPS Y MEDICINA PREPAGADA SURAMETICANA S A",
		"SEGUROS DE VIDA SURAMERICANA SA",
	)
	r.Register(NewLiberty(logger),
		"LIBERTY SEGUROS SA",
		"LIBERTY SEGUROS DE VIDA SA",
	)
	r.Register(NewBolivar(logger),
		"SEGUROS COMERCIALES BOLIVAR",
		"ARL SEGUROS BOLIVAR",
	)
	r.Register(NewNuevaEPS(logger),
		"NUEVA EPS SA",
	)
	r.Register(NewSegEstado(logger, pdfPages),
		"SEGUROS DEL ESTADO SA",
		"SEGUROS DE VIDA DEL ESTADO S A",
	)
	r.Register(NewEquidad(logger, pdfPages),
		"LA EQUIDAD SEGUROS GENERALES",
		"LA EQUIDAD SEGUROS DE VIDA ORGANISMO CORPORATIVO",
	)
	return r
}
