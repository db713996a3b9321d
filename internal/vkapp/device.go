package vkapp

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_portability_subset"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"
	"github.com/vkngwrapper/vulkan-demos/internal/vkutil"
)

var deviceExtensions = []string{khr_swapchain.ExtensionName}

type swapchainSupportDetails struct {
	Capabilities *khr_surface.Capabilities
	Formats      []khr_surface.Format
	PresentModes []khr_surface.PresentMode
}

type suitableDevice struct {
	device     core1_0.PhysicalDevice
	properties *core1_0.PhysicalDeviceProperties
}

func (app *App) pickPhysicalDevice() error {
	physicalDevices, _, err := app.instance.EnumeratePhysicalDevices()
	if err != nil {
		return errors.Wrap(err, "failed to enumerate physical devices")
	}

	var suitable []suitableDevice
	var candidates []vkutil.DeviceCandidate
	for _, device := range physicalDevices {
		properties, err := device.Properties()
		if err != nil {
			return errors.Wrap(err, "failed to read physical device properties")
		}

		if !app.isDeviceSuitable(device) {
			app.log.Debug("skipping unsuitable device", slog.String("device", properties.DriverName))
			continue
		}

		suitable = append(suitable, suitableDevice{device: device, properties: properties})
		candidates = append(candidates, vkutil.DeviceCandidate{Name: properties.DriverName, Type: properties.DriverType})
	}

	preferred := app.cfg.Vulkan.PreferredDevice
	index, matched, ok := vkutil.SelectDevice(candidates, preferred)
	if !ok {
		return errors.Newf("failed to find a suitable GPU among %d devices", len(physicalDevices))
	}
	if preferred != "" && !matched {
		app.log.Warn("preferred device not found, using best available", slog.String("preferred", preferred))
	}

	chosen := suitable[index]
	app.physicalDevice = chosen.device
	app.maxAnisotropy = chosen.properties.Limits.MaxSamplerAnisotropy

	app.queueFamilies, err = app.findQueueFamilies(chosen.device)
	if err != nil {
		return err
	}

	app.log.Info("selected physical device",
		slog.String("device", chosen.properties.DriverName),
		slog.Any("type", chosen.properties.DriverType))

	return nil
}

func (app *App) isDeviceSuitable(device core1_0.PhysicalDevice) bool {
	indices, err := app.findQueueFamilies(device)
	if err != nil || !indices.IsComplete() {
		return false
	}

	extensions, _, err := device.EnumerateDeviceExtensionProperties()
	if err != nil || !vkutil.HasExtensions(extensions, deviceExtensions) {
		return false
	}

	swapchainSupport, err := app.querySwapchainSupport(device)
	if err != nil {
		return false
	}

	return len(swapchainSupport.Formats) > 0 && len(swapchainSupport.PresentModes) > 0
}

func (app *App) findQueueFamilies(device core1_0.PhysicalDevice) (vkutil.QueueFamilyIndices, error) {
	var familyFlags []core1_0.QueueFlags
	for _, queueFamily := range device.QueueFamilyProperties() {
		familyFlags = append(familyFlags, queueFamily.QueueFlags)
	}

	return vkutil.FindQueueFamilies(familyFlags, func(family int) (bool, error) {
		supported, _, err := app.surface.PhysicalDeviceSurfaceSupport(device, family)
		return supported, err
	})
}

func (app *App) querySwapchainSupport(device core1_0.PhysicalDevice) (swapchainSupportDetails, error) {
	var details swapchainSupportDetails
	var err error

	details.Capabilities, _, err = app.surface.PhysicalDeviceSurfaceCapabilities(device)
	if err != nil {
		return details, err
	}

	details.Formats, _, err = app.surface.PhysicalDeviceSurfaceFormats(device)
	if err != nil {
		return details, err
	}

	details.PresentModes, _, err = app.surface.PhysicalDeviceSurfacePresentModes(device)
	return details, err
}

func (app *App) createLogicalDevice() error {
	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	queuePriority := float32(1.0)
	for _, queueFamily := range app.queueFamilies.Unique() {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queueFamily,
			QueuePriorities:  []float32{queuePriority},
		})
	}

	var extensionNames []string
	extensionNames = append(extensionNames, deviceExtensions...)

	// Required on portability implementations such as MoltenVK.
	extensions, _, err := app.physicalDevice.EnumerateDeviceExtensionProperties()
	if err != nil {
		return err
	}

	_, supported := extensions[khr_portability_subset.ExtensionName]
	if supported {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	app.anisotropyEnabled = app.options.Anisotropy && app.physicalDevice.Features().SamplerAnisotropy

	app.device, _, err = app.physicalDevice.CreateDevice(nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos: queueFamilyOptions,
		EnabledFeatures: &core1_0.PhysicalDeviceFeatures{
			SamplerAnisotropy: app.anisotropyEnabled,
		},
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return err
	}

	app.graphicsQueue = app.device.GetQueue(*app.queueFamilies.GraphicsFamily, 0)
	app.presentQueue = app.device.GetQueue(*app.queueFamilies.PresentFamily, 0)
	app.swapchainExtension = khr_swapchain.CreateExtensionFromDevice(app.device)

	return nil
}
