package coordinator

import (
	"fmt"

	"github.com/clabops/backend-go/internal/domain"
)

// DeploymentCommands renders ready-to-run gcloud commands for a plan.
// Discounted plans provision preemptible instances.
func DeploymentCommands(plan domain.DeploymentPlan) []string {
	commands := []string{
		"# Set your Google Cloud project and region",
		"export PROJECT_ID=your-project-id",
		fmt.Sprintf("export REGION=%s", plan.Region),
		"gcloud config set project $PROJECT_ID",
		"",
	}

	machineType := plan.Offer.Name
	if plan.Offer.Custom {
		// custom machine types take memory in MB
		machineType = fmt.Sprintf("custom-%d-%d", plan.Offer.CPU, plan.Offer.MemoryGB*1024)
	}

	for i := 1; i <= plan.Count; i++ {
		name := fmt.Sprintf("containerlab-vm-%d", i)
		commands = append(commands,
			fmt.Sprintf("# Create VM %d (%s, %d CPU, %d GB)", i, plan.Offer.Name, plan.Offer.CPU, plan.Offer.MemoryGB),
			fmt.Sprintf("gcloud compute instances create %s \\", name),
			"    --zone=$REGION-a \\",
			fmt.Sprintf("    --machine-type=%s \\", machineType),
			"    --image-family=ubuntu-2004-lts \\",
			"    --image-project=ubuntu-os-cloud \\",
			"    --boot-disk-size=20GB \\",
		)
		if plan.Policy.Discounted {
			commands = append(commands, "    --preemptible \\")
		}
		commands = append(commands, "    --tags=containerlab", "")
	}

	return commands
}
