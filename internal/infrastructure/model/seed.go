package model

// seedCorpus mirrors the training set used to fit the original pickled
// estimator: a handful of short synthetic documents per label, enough for
// keyword-level separation of the financial document classes.
var seedCorpus = map[string][]string{
	"invoice": {
		"invoice number 1042 amount due 450.00 payment terms net 30 bill to acme corp",
		"tax invoice subtotal vat total due remit payment to account please pay by due date",
		"receipt of purchase item quantity unit price total amount paid thank you for your business",
		"billing statement invoice date po number line items freight charges balance due",
		"final invoice for services rendered consulting hours rate total payable upon receipt",
	},
	"bank_statement": {
		"bank statement account number opening balance closing balance statement period",
		"checking account summary deposits withdrawals interest earned available balance",
		"transaction history date description debit credit running balance overdraft fee",
		"monthly statement savings account beginning balance ending balance direct deposit",
		"account activity atm withdrawal wire transfer service charge daily balance",
	},
	"financial_report": {
		"annual report fiscal year revenue operating income net earnings per share",
		"quarterly financial report balance sheet assets liabilities shareholders equity",
		"consolidated statement of cash flows operating activities investing financing",
		"income statement gross profit operating expenses ebitda depreciation amortization",
		"financial highlights revenue growth margin outlook guidance dividend declared",
	},
	"drivers_licence": {
		"driver license state department of motor vehicles class c expiration date",
		"drivers licence number date of birth height eyes restrictions endorsements",
		"dmv issued permit vehicle operator license organ donor signature",
		"commercial driver license cdl class a issued expires sex hgt wgt",
	},
	"id_doc": {
		"passport surname given names nationality date of birth place of birth",
		"identity card national id number issued by valid until holder signature",
		"identification document photo id government issued date of expiry",
		"residence permit identity number authority of issue machine readable zone",
	},
	"contract": {
		"this agreement is entered into by and between the parties hereby agree",
		"contract terms and conditions effective date termination clause governing law",
		"service agreement scope of work deliverables indemnification limitation of liability",
		"employment contract salary benefits notice period confidentiality non compete",
		"lease agreement landlord tenant premises rent security deposit term of lease",
	},
	"email": {
		"from to subject sent attachments dear regards best wishes forwarded message",
		"reply all cc bcc original message wrote on behalf of kind regards",
		"email thread re fwd meeting follow up please find attached",
	},
	"form": {
		"application form please complete all fields applicant name signature date",
		"registration form section a personal details section b contact information",
		"claim form policy number claimant please print clearly submit to",
		"tax form w9 taxpayer identification number certification instructions",
	},
}
