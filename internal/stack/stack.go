// Package stack sequences one full synthesis pass: execution roles, the
// compute functions in their packaging variants, the rendered API
// definition, the gateway and its account logging binding, observability
// wiring and the database bootstrap.
package stack

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	deliveryinfra "github.com/farmlane/delivery-infra"
	"github.com/farmlane/delivery-infra/internal/apidef"
	"github.com/farmlane/delivery-infra/internal/dbinit"
	"github.com/farmlane/delivery-infra/internal/functions"
	"github.com/farmlane/delivery-infra/internal/gateway"
	"github.com/farmlane/delivery-infra/internal/observability"
	"github.com/farmlane/delivery-infra/internal/roles"
	"github.com/farmlane/delivery-infra/internal/template"
	"github.com/farmlane/delivery-infra/resources/lambda"
)

// Logical names of the shared resources.
const (
	TokenAuthRoleName    = "RdsTokenAuthRole"
	PasswordAuthRoleName = "RdsPasswordAuthRole"
	AccessLogsName       = "ApiAccessLogs"
	ExecutionRoleName    = "ApiExecutionRole"
	ApiName              = "DeliveryApi"
	AccountLogRoleName   = "ApiAccountLogRole"
	AccountBindingName   = "ApiAccountLogBinding"
	AlarmTopicName       = "ErrorAlarmTopic"
	AlarmSubName         = "ErrorAlarmSubscription"
	DashboardName        = "FunctionDashboard"
	PopulateHookName     = "PopulateDataHook"
)

// IAM role names, fixed so the role ARNs are known at synthesis time.
const (
	tokenAuthRole    = "delivery-rds-token-auth"
	passwordAuthRole = "delivery-rds-password-auth"
	apiGatewayRole   = "delivery-api-gateway"
	accountLogRole   = "delivery-api-account-logs"
)

// gatewayRoutes are the functions behind the API. CreateSlots ships in
// every packaging variant so the variants can be benchmarked against the
// same logical route; GetSlots and BookDelivery ship only as the
// production path.
var gatewayRoutes = []functions.Request{
	{Name: "CreateSlots", Variant: functions.DefaultBuilt},
	{Name: "CreateSlotsUber", Variant: functions.PrebuiltArchive},
	{Name: "CreateSlotsCustom", Variant: functions.CustomRuntimeArchive},
	{Name: "CreateSlotsDocker", Variant: functions.ContainerImage, BuildFile: "LambdaBaseContainerImage"},
	{Name: "CreateSlotsDockerCustom", Variant: functions.ContainerImage, BuildFile: "LambdaCustomContainerImage"},
	{Name: "GetSlots", Variant: functions.DefaultBuilt},
	{Name: "BookDelivery", Variant: functions.DefaultBuilt},
}

// Result is the outcome of a synthesis pass.
type Result struct {
	Template *deliveryinfra.Template
	// Order lists the resources in dependency order.
	Order []string
	// ApiURL is the stage URL pattern; the gateway id inside ${...} is
	// substituted at deploy time.
	ApiURL string
}

// Synthesize builds the delivery stack template from configuration.
func Synthesize(cfg Config, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dbRegion := cfg.DBRegion
	if dbRegion == "" {
		dbRegion = cfg.Region
	}

	b := template.NewBuilder("Delivery API: gateway, compute functions and database bootstrap")

	// Execution roles, one per database auth mode.
	roleFactory := &roles.Factory{Region: cfg.Region, Account: cfg.AccountID}

	tokenRole, err := roleFactory.TokenAuthRole(tokenAuthRole, cfg.DBUser)
	if err != nil {
		return nil, err
	}
	hTokenRole, err := b.Add(TokenAuthRoleName, tokenRole)
	if err != nil {
		return nil, err
	}

	passwordRole, err := roleFactory.PasswordAuthRole(passwordAuthRole, cfg.DBAdminSecretArn, cfg.DBUserSecretArn)
	if err != nil {
		return nil, err
	}
	hPasswordRole, err := b.Add(PasswordAuthRoleName, passwordRole)
	if err != nil {
		return nil, err
	}

	// Compute functions.
	factory := &functions.Factory{
		Region:           cfg.Region,
		Account:          cfg.AccountID,
		HandlerNamespace: cfg.HandlerNamespace,
		Network: lambda.Function_VpcConfig{
			SubnetIds:        cfg.SubnetIDs,
			SecurityGroupIds: []string{cfg.SecurityGroupID},
		},
		Database: functions.DatabaseEnv{
			Endpoint:        cfg.DBEndpoint,
			ProxyEndpoint:   cfg.DBProxyEndpoint,
			Port:            cfg.DBPort,
			Region:          dbRegion,
			User:            cfg.DBUser,
			AdminSecretName: cfg.DBAdminSecretName,
			UserSecretName:  cfg.DBUserSecretName,
		},
		SourceDir:            cfg.SourceDir,
		PrebuiltArchive:      cfg.PrebuiltArchive,
		CustomRuntimeArchive: cfg.CustomRuntimeArchive,
		Bundler: &functions.Bundler{
			SourceDir: cfg.SourceDir,
			Artifact:  cfg.LocalBuildArtifact,
			Command:   cfg.LocalBuildCommand,
			Log:       log,
		},
	}

	gw := &gateway.Provisioner{
		Region:    cfg.Region,
		Account:   cfg.AccountID,
		StageName: cfg.StageName,
	}

	vars := make(map[string]string, len(gatewayRoutes)+1)
	var functionArns []string
	var monitored []string

	for _, route := range gatewayRoutes {
		route.Role = hTokenRole.Arn()

		spec, err := factory.Build(route)
		if err != nil {
			return nil, err
		}

		h, err := b.Add(spec.Name, spec.Function)
		if err != nil {
			return nil, err
		}
		for key, value := range spec.Metadata {
			b.SetMetadata(h, key, value)
		}

		vars[spec.Name] = gw.InvocationTarget(spec.Arn)
		functionArns = append(functionArns, spec.Arn)
		if spec.Variant == functions.DefaultBuilt {
			monitored = append(monitored, spec.Name)
		}

		log.Debug("function packaged",
			zap.String("name", spec.Name),
			zap.String("variant", string(spec.Variant)))
	}
	vars["ApiRole"] = gw.RoleArn(apiGatewayRole)

	// API definition: render the routing template, then parse the result.
	rendered, err := apidef.RenderFile(cfg.APISchemaPath, vars)
	if err != nil {
		return nil, err
	}
	parsed, err := apidef.Parse(rendered)
	if err != nil {
		return nil, err
	}
	definition, err := apidef.Body(parsed)
	if err != nil {
		return nil, err
	}

	// Gateway.
	hAccessLogs, err := b.Add(AccessLogsName, gw.AccessLogGroup())
	if err != nil {
		return nil, err
	}

	executionRole, err := gw.ExecutionRole(apiGatewayRole, functionArns)
	if err != nil {
		return nil, err
	}
	hExecutionRole, err := b.Add(ExecutionRoleName, executionRole)
	if err != nil {
		return nil, err
	}

	hApi, err := b.Add(ApiName, gw.Api(definition, hAccessLogs.Arn()))
	if err != nil {
		return nil, err
	}
	// The definition names the execution role as a plain ARN, so the edge
	// has to be explicit.
	b.DependsOn(hApi, hExecutionRole)

	// Account-level gateway logging.
	hAccountRole, err := b.Add(AccountLogRoleName, gw.LoggingRole(accountLogRole))
	if err != nil {
		return nil, err
	}
	hBinding, err := b.Add(AccountBindingName, gw.AccountBinding(hAccountRole.Arn()))
	if err != nil {
		return nil, err
	}
	b.DependsOn(hBinding, hApi)

	// Observability.
	obs := &observability.Wiring{Region: cfg.Region, AlertEmail: cfg.AlertEmail}

	hTopic, err := b.Add(AlarmTopicName, obs.AlarmTopic())
	if err != nil {
		return nil, err
	}
	if sub, ok := obs.EmailSubscription(hTopic.Att("TopicArn")); ok {
		if _, err := b.Add(AlarmSubName, sub); err != nil {
			return nil, err
		}
	}

	for _, name := range monitored {
		alarm := obs.ErrorAlarm(name, hTopic.Att("TopicArn"))
		if _, err := b.Add(name+"Errors", alarm); err != nil {
			return nil, err
		}
	}

	dashboard, err := obs.Dashboard(monitored)
	if err != nil {
		return nil, err
	}
	if _, err := b.Add(DashboardName, dashboard); err != nil {
		return nil, err
	}

	// Database bootstrap: the populate function reads credentials from
	// Secrets Manager and talks to the writer endpoint directly.
	job, err := dbinit.NewJob(cfg.SQLScriptPath)
	if err != nil {
		return nil, err
	}

	populate, err := factory.Build(functions.Request{
		Name:    functions.PopulateFunctionName,
		Variant: functions.DefaultBuilt,
		Role:    hPasswordRole.Arn(),
	})
	if err != nil {
		return nil, err
	}
	hPopulate, err := b.Add(populate.Name, populate.Function)
	if err != nil {
		return nil, err
	}
	for key, value := range populate.Metadata {
		b.SetMetadata(hPopulate, key, value)
	}

	if _, err := b.Add(PopulateHookName, job.Hook(hPopulate.Arn())); err != nil {
		return nil, err
	}

	url := gw.URL(ApiName)
	b.AddOutput("ApiUrl", deliveryinfra.Output{
		Description: "Invoke URL of the delivery API",
		Value:       url,
	})

	tmpl, err := b.Build()
	if err != nil {
		return nil, err
	}
	order, err := b.Order()
	if err != nil {
		return nil, err
	}

	log.Info("synthesis complete",
		zap.String("stack", cfg.StackName),
		zap.Int("resources", len(tmpl.Resources)),
		zap.Strings("functions", lo.Map(gatewayRoutes, func(r functions.Request, _ int) string { return r.Name })))

	return &Result{
		Template: tmpl,
		Order:    order,
		ApiURL:   url.String,
	}, nil
}
