package services

import "fmt"

// SystemPrompt frames every analysis request sent to the model.
const SystemPrompt = "Actúa como un experto en normativas legales."

// Search phrases used to retrieve context for the fixed analyses.
const (
	// SearchDividends retrieves dividend-distribution clauses from both
	// the fund regulation and the applicable norm.
	SearchDividends = "reparto de dividendos definitivos y provisorios"

	// SearchFundDuration retrieves the fund's duration clauses.
	SearchFundDuration = "plazo de duración del fondo"

	// SearchDebtMaturity retrieves the CORFO debt maturity clauses.
	SearchDebtMaturity = "vencimiento en el pago de la deuda con CORFO"
)

// compliancePromptTemplate asks whether the fund meets the requirements
// for distributing definitive and provisional dividends.
const compliancePromptTemplate = `Contexto 1: Reglamento Interno del Fondo
%s

Contexto 2: Normativa Aplicable al Fondo
%s

Tarea: Realiza un análisis comparativo entre el Reglamento Interno del Fondo y la Normativa Aplicable para determinar si el Fondo cumple con los requisitos necesarios para realizar el reparto de dividendos definitivos y provisorios, debes responder si cumple o no. En tu análisis, identifica específicamente:
1. Las condiciones establecidas en el Reglamento Interno sobre el reparto de dividendos.
2. Los requisitos impuestos por la Normativa Aplicable para permitir dicho reparto.
3. Si existen discrepancias entre ambos documentos, explícitalas.`

// termsPromptTemplate asks for the fund duration, the CORFO debt
// maturity date, and any discrepancy between the two.
const termsPromptTemplate = `Contexto 1: Plazo de Duración del Fondo
%s

Contexto 2: Vencimiento en el Pago de la Deuda con CORFO
%s

Tarea: Realiza un análisis de los contextos para obtener el plazo de duracion del fondo y el vencimiento en el pago de la deuda con CORFO, tu respuesta debe ser breve. En tu análisis, identifica específicamente:
1. El plazo de duración del fondo establecido en el Reglamento Interno.
2. La fecha de vencimiento en el pago de la deuda con CORFO.
3. Si existen discrepancias entre ambos plazos, explícitalas.`

// BuildCompliancePrompt renders the dividend-compliance prompt from the
// two retrieved contexts. The template is fixed; only the contexts vary.
func BuildCompliancePrompt(regulationContext, normContext string) string {
	return fmt.Sprintf(compliancePromptTemplate, regulationContext, normContext)
}

// BuildTermsPrompt renders the duration-versus-maturity prompt from the
// two retrieved contexts.
func BuildTermsPrompt(durationContext, maturityContext string) string {
	return fmt.Sprintf(termsPromptTemplate, durationContext, maturityContext)
}
