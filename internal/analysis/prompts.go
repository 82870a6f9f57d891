package analysis

// Prompt templates for the three-stage document analysis. Each stage asks for
// a strict JSON object so the response can be unmarshalled directly; fenced
// output is tolerated and stripped before parsing.

const transactionPrompt = `Analyze the following bank statement and provide detailed transaction analysis. Focus on Indian Rupees and categorize spending patterns. Return ONLY a JSON object with this structure, no prose:
{
  "totalIncome": number,
  "totalExpenses": number,
  "netSavings": number,
  "spendingCategories": {
    "groceries": {"amount": number, "percentage": number},
    "entertainment": {"amount": number, "percentage": number},
    "utilities": {"amount": number, "percentage": number},
    "transportation": {"amount": number, "percentage": number},
    "healthcare": {"amount": number, "percentage": number},
    "shopping": {"amount": number, "percentage": number},
    "dining": {"amount": number, "percentage": number},
    "others": {"amount": number, "percentage": number}
  },
  "recurringExpenses": [{"category": string, "amount": number, "frequency": string}],
  "monthlyAverages": {"income": number, "expenses": number, "savings": number},
  "transactions": [{"date": "YYYY-MM-DD", "description": string, "amount": number, "category": string, "type": "income"|"expense"}]
}

Bank Statement:
%s`

const budgetPrompt = `Based on the following financial data, provide AI-powered budget recommendations for an Indian user. Consider the 50/30/20 rule and Indian financial context. Return ONLY a JSON object, no prose:
{
  "recommendedBudget": {
    "needs": {"amount": number, "percentage": 50},
    "wants": {"amount": number, "percentage": 30},
    "savings": {"amount": number, "percentage": 20}
  },
  "spendingLimits": {
    "groceries": number,
    "entertainment": number,
    "utilities": number,
    "transportation": number,
    "healthcare": number,
    "shopping": number,
    "dining": number
  },
  "savingsGoals": [{"goal": string, "targetAmount": number, "monthlyContribution": number, "timeline": string}],
  "budgetAdjustments": [{"category": string, "currentSpending": number, "recommendedLimit": number, "suggestion": string}]
}

Financial Data:
%s

Salary Information:
%s`

const investmentPrompt = `Provide comprehensive investment recommendations for an Indian investor based on the financial profile. Consider Indian market conditions, tax benefits, and risk profiles. Return ONLY a JSON object, no prose:
{
  "riskAssessment": {"riskProfile": "conservative"|"moderate"|"aggressive", "riskScore": number, "factors": [string]},
  "stockRecommendations": [{"symbol": string, "name": string, "sector": string, "allocation": number, "reasoning": string, "riskLevel": string}],
  "mutualFundRecommendations": [{"name": string, "type": string, "allocation": number, "expectedReturn": number, "riskLevel": string, "reasoning": string}],
  "portfolioDiversification": {"equity": number, "debt": number, "gold": number, "realEstate": number, "emergencyFund": number}
}

Financial Profile:
%s

Budget Analysis:
%s`
