package config

// Default prompt wording carried over from the original sample. The
// structured prompt pins the JSON shape the report command expects.

const defaultFullPrompt = `extract data from attached invoice in key value format.`

const defaultStructuredPrompt = `Process the pdf invoice and list all metadata and values in json format. Then process the details in json and do following:
Format your analysis as a JSON object in following structure:
{
"Vendor": "<vendor name>",
"InvoiceDate": "<DD-MM-YYYY formatted invoice date>",
"StartDate": "<DD-MM-YYYY formatted service start date>",
"EndDate": "<DD-MM-YYYY formatted service end date>",
"CurrencyCode": "<currency code based on the symbol and vendor details>",
"TotalAmountDue": "<100.90>",
"Description": "<concise summary of the invoice description within 20 words>"
}
Please proceed with the analysis based on the above instructions. Please don't state "Based on the .."`

const defaultSummaryPrompt = `Process the pdf invoice and summarize the invoice under 3 lines`

// DefaultPrompts returns the built-in prompt set.
func DefaultPrompts() Prompts {
	return Prompts{
		Full:       defaultFullPrompt,
		Structured: defaultStructuredPrompt,
		Summary:    defaultSummaryPrompt,
	}
}
