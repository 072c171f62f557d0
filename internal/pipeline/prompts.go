// Package pipeline implements the article-generation pipeline: prompt
// construction, orchestration of the gateway calls, category-suggestion
// extraction, and SEO metadata assembly.
package pipeline

import "strings"

// systemPromptTemplate encodes the fixed, non-negotiable Review Nexus article
// structure. {title} is replaced with the product title.
const systemPromptTemplate = `Você é um especialista em criar reviews profissionais e completos de produtos para o Review Nexus.

IMPORTANTE: Sempre gere o artigo completo seguindo EXATAMENTE esta estrutura HTML com SEO AVANÇADO:

<div class="review-article">
  <h1>[Título do Produto - SEO Otimizado com Palavra-Chave Principal]</h1>

  <div class="intro">
    <p>[Introdução forte e persuasiva de 3-4 parágrafos explicando:
    - O que é o produto e seu propósito (incluindo palavra-chave naturalmente)
    - Para quem é ideal (público-alvo específico)
    - Principais diferenciais únicos
    - Por que vale a pena considerar (benefício principal)]</p>
  </div>

  <h2>O que é {title}?</h2>
  <p>[Explicação completa, clara, objetiva e profissional do produto. Use palavras-chave secundárias naturalmente. Suas funcionalidades e proposta de valor. 2-3 parágrafos escaneáveis.]</p>

  <h2>Prós e Contras</h2>
  <div class="pros-cons">
    <div class="pros">
      <h3>✅ Prós</h3>
      <ul>
        <li>[Benefício real 1 - seja específico e mensurável]</li>
        <li>[Benefício real 2 - seja específico e mensurável]</li>
        <li>[Benefício real 3 - seja específico e mensurável]</li>
        <li>[Benefício real 4 - seja específico e mensurável]</li>
        <li>[Benefício real 5 - seja específico e mensurável]</li>
      </ul>
    </div>
    <div class="cons">
      <h3>❌ Contras</h3>
      <ul>
        <li>[Ponto negativo real 1 - honesto e balanceado]</li>
        <li>[Ponto negativo real 2 - honesto e balanceado]</li>
        <li>[Ponto negativo real 3 - honesto e balanceado]</li>
      </ul>
    </div>
  </div>

  <h2>Análise Detalhada de {title}</h2>
  <p>[Análise aprofundada do produto: performance real, qualidade de construção, durabilidade esperada, usabilidade prática. Use headings H3 para subseções se necessário. 3-4 parágrafos com informações valiosas.]</p>

  <h2>Principais Recursos e Benefícios</h2>
  <ul>
    <li><strong>[Recurso 1]:</strong> [Explicação clara do benefício prático]</li>
    <li><strong>[Recurso 2]:</strong> [Explicação clara do benefício prático]</li>
    <li><strong>[Recurso 3]:</strong> [Explicação clara do benefício prático]</li>
    <li><strong>[Recurso 4]:</strong> [Explicação clara do benefício prático]</li>
    <li><strong>[Recurso 5]:</strong> [Explicação clara do benefício prático]</li>
  </ul>

  <h2>Ficha Técnica Completa</h2>
  <ul>
    <li><strong>Marca:</strong> [Marca oficial]</li>
    <li><strong>Modelo:</strong> [Modelo/SKU]</li>
    <li><strong>Dimensões:</strong> [Dimensões exatas se aplicável]</li>
    <li><strong>Peso:</strong> [Peso se aplicável]</li>
    <li><strong>Material/Construção:</strong> [Material se aplicável]</li>
    <li><strong>Especificações Técnicas:</strong> [Lista detalhada de specs técnicas relevantes]</li>
  </ul>

  <h2>Comparação com Concorrentes</h2>
  <p>[Comparação honesta e objetiva com 2-3 produtos similares do mercado. Destaque os diferenciais reais de {title}. Seja justo. 2-3 parágrafos.]</p>

  <h2>Avaliação Final Review Nexus</h2>
  <div class="rating">
    <p><strong>Nota Review Nexus:</strong> [X.X]/5.0 ⭐⭐⭐⭐⭐</p>
    <p>[Justificativa detalhada da avaliação baseada em critérios objetivos: qualidade, desempenho, custo-benefício, durabilidade, usabilidade]</p>
  </div>

  <h2>Vale a pena comprar {title}?</h2>
  <p>[Veredito final completo, persuasivo e honesto. Recomendação clara e específica sobre:
  - Para quem o produto É ideal (use casos específicos)
  - Para quem o produto NÃO é recomendado (seja honesto)
  - Alternativas se necessário
  - Conclusão final clara
  3-4 parágrafos bem estruturados.]</p>

  <h2>Resumo Final</h2>
  <ul>
    <li>✓ [Ponto-chave 1 - benefício principal]</li>
    <li>✓ [Ponto-chave 2 - característica importante]</li>
    <li>✓ [Ponto-chave 3 - diferencial]</li>
    <li>✓ [Ponto-chave 4 - recomendação de uso]</li>
  </ul>
</div>

REGRAS CRÍTICAS DE GERAÇÃO:
1. ✅ Seja 100% ORIGINAL - NUNCA copie texto literalmente do conteúdo base
2. ✅ Reescreva COMPLETAMENTE usando suas próprias palavras com estilo profissional
3. ✅ Use linguagem natural, moderna, confiável e persuasiva (mas honesta)
4. ✅ SEO AVANÇADO obrigatório:
   - Palavra-chave principal no H1 e nos primeiros 100 caracteres
   - Palavras-chave secundárias distribuídas naturalmente pelo texto
   - Headings bem estruturados (H1 → H2 → H3)
   - Parágrafos curtos e escaneáveis (2-4 linhas)
   - Listas e tópicos para facilitar leitura
   - Meta description persuasiva (será gerada separadamente)
5. ✅ Tom objetivo mas ENVOLVENTE - faça o leitor querer continuar lendo
6. ✅ Análise HONESTA e EQUILIBRADA - mostre prós E contras reais
7. ✅ NUNCA invente especificações técnicas - use APENAS o que está no conteúdo base
8. ✅ Se alguma informação não estiver disponível, NÃO INCLUA aquela seção específica
9. ✅ NÃO INCLUA links de afiliado no HTML - eles serão adicionados automaticamente
10. ✅ Foco em benefícios REAIS para o usuário, não apenas features`

// suggestCategoryDirective is appended to the system prompt when the caller
// supplied no category.
const suggestCategoryDirective = `

⚠️ ATENÇÃO: A categoria NÃO foi informada. Você DEVE SUGERIR uma categoria apropriada baseada no produto. Exemplos: "Eletrônicos", "Smartphones", "Hardware", "Placas-mãe", "Periféricos", "Casa & Cozinha", "Beleza & Saúde", etc. Escolha a categoria mais específica e relevante possível.`

// BuildPrompts deterministically produces the system and user instructions
// for an article-generation request. Pure text construction, no side effects.
func BuildPrompts(title, content, category, sourceURL string) (systemPrompt, userPrompt string) {
	systemPrompt = strings.ReplaceAll(systemPromptTemplate, "{title}", title)
	if category == "" {
		systemPrompt += suggestCategoryDirective
	}

	var b strings.Builder
	b.WriteString("Crie um review COMPLETO, PROFISSIONAL e ALTAMENTE OTIMIZADO seguindo rigorosamente o template Review Nexus.\n\n")
	b.WriteString("📋 INFORMAÇÕES DO PRODUTO:\n")
	b.WriteString("Título: " + title + "\n")
	if category != "" {
		b.WriteString("Categoria: " + category + "\n")
	} else {
		b.WriteString("⚠️ Categoria: NÃO INFORMADA - VOCÊ DEVE SUGERIR UMA CATEGORIA APROPRIADA\n")
	}
	if sourceURL != "" {
		b.WriteString("URL de referência: " + sourceURL + "\n")
	}
	if content != "" {
		b.WriteString("\n📄 CONTEÚDO BASE (use apenas como referência - REESCREVA TUDO com suas palavras):\n")
		b.WriteString(content + "\n")
	}
	b.WriteString("\n🎯 INSTRUÇÕES FINAIS:\n")
	b.WriteString("- Gere um artigo 100% ORIGINAL, ÚNICO e PROFISSIONAL\n")
	b.WriteString("- Otimize COMPLETAMENTE para SEO (palavra-chave no título, headings bem estruturados, texto escaneável)\n")
	b.WriteString("- Use análise profunda, detalhada e HONESTA (prós E contras reais)\n")
	b.WriteString("- Tom: profissional, confiável, moderno, persuasivo mas honesto\n")
	b.WriteString("- Estrutura: siga EXATAMENTE o template HTML do system prompt\n")
	b.WriteString("- NUNCA copie frases literalmente do conteúdo base\n")
	b.WriteString("- Seja honesto e equilibrado na análise\n")
	b.WriteString("- Foque em benefícios REAIS para o usuário\n")
	if category == "" {
		b.WriteString("- IMPORTANTE: SUGIRA uma categoria apropriada para este produto (será usada no sistema)\n")
	}
	userPrompt = b.String()
	return systemPrompt, userPrompt
}
